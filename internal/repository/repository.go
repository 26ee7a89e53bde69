// Package repository holds the data-access interfaces and their mongo
// implementations. Store-level "no documents" is translated to
// apperrors.ErrNotFound and duplicate unique keys to ErrConflict here,
// so upper layers only ever see error kinds.
package repository

import (
	"errors"

	"github.com/Olumuyiwaray/blog-api/internal/apperrors"
	"go.mongodb.org/mongo-driver/mongo"
)

// isDuplicateKey reports whether err is a unique index violation.
func isDuplicateKey(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	return mongo.IsDuplicateKeyError(err)
}

// mapWriteErr folds mongo write errors into the shared taxonomy.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicateKey(err) {
		return apperrors.ErrConflict
	}
	return err
}
