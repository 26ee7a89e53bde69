package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Olumuyiwaray/blog-api/internal/apperrors"
	"github.com/Olumuyiwaray/blog-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TokenRepository stores verification tokens and password reset codes.
// Both are consulted once, marked consumed, and left to expire.
type TokenRepository interface {
	CreateVerification(ctx context.Context, t *models.VerificationToken) error
	FindVerification(ctx context.Context, token string) (*models.VerificationToken, error)
	ConfirmVerification(ctx context.Context, token string) error
	CreateResetCode(ctx context.Context, c *models.ResetCode) error
	FindResetCode(ctx context.Context, code string) (*models.ResetCode, error)
	MarkResetCodeUsed(ctx context.Context, code string) error
}

type mongoTokenRepo struct {
	verifications *mongo.Collection
	resetCodes    *mongo.Collection
}

func NewMongoTokenRepo(db *mongo.Database) TokenRepository {
	return &mongoTokenRepo{
		verifications: db.Collection("verification_tokens"),
		resetCodes:    db.Collection("reset_codes"),
	}
}

func (r *mongoTokenRepo) CreateVerification(ctx context.Context, t *models.VerificationToken) error {
	t.CreatedAt = time.Now().UTC()
	if _, err := r.verifications.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert verification token: %w", err)
	}
	return nil
}

func (r *mongoTokenRepo) FindVerification(ctx context.Context, token string) (*models.VerificationToken, error) {
	var t models.VerificationToken
	err := r.verifications.FindOne(ctx, bson.M{"token": token}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("verification token: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find verification token: %w", err)
	}
	return &t, nil
}

func (r *mongoTokenRepo) ConfirmVerification(ctx context.Context, token string) error {
	_, err := r.verifications.UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{"$set": bson.M{"is_confirmed": true}},
	)
	if err != nil {
		return fmt.Errorf("confirm verification token: %w", err)
	}
	return nil
}

func (r *mongoTokenRepo) CreateResetCode(ctx context.Context, c *models.ResetCode) error {
	c.CreatedAt = time.Now().UTC()
	if _, err := r.resetCodes.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert reset code: %w", err)
	}
	return nil
}

func (r *mongoTokenRepo) FindResetCode(ctx context.Context, code string) (*models.ResetCode, error) {
	var c models.ResetCode
	err := r.resetCodes.FindOne(ctx, bson.M{"code": code}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("reset code: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find reset code: %w", err)
	}
	return &c, nil
}

func (r *mongoTokenRepo) MarkResetCodeUsed(ctx context.Context, code string) error {
	_, err := r.resetCodes.UpdateOne(ctx,
		bson.M{"code": code},
		bson.M{"$set": bson.M{"is_used": true}},
	)
	if err != nil {
		return fmt.Errorf("mark reset code used: %w", err)
	}
	return nil
}
