package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Olumuyiwaray/blog-api/internal/apperrors"
	"github.com/Olumuyiwaray/blog-api/internal/mailer"
	"github.com/Olumuyiwaray/blog-api/internal/models"
	"github.com/Olumuyiwaray/blog-api/internal/queue"
	"github.com/Olumuyiwaray/blog-api/internal/repository"
	"github.com/Olumuyiwaray/blog-api/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	verificationTTL = 15 * time.Minute
	resetCodeTTL    = 10 * time.Minute
)

// UserService owns registration, login, email verification and the
// password reset flows. Outbound mail goes through the job queue;
// enqueue failures are logged and never fail the request.
type UserService struct {
	users     repository.UserRepository
	tokens    repository.TokenRepository
	jobs      queue.Enqueuer
	jwtSecret string
	jwtTTL    time.Duration
	publicURL string
	log       *zap.SugaredLogger
}

func NewUserService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	jobs queue.Enqueuer,
	jwtSecret string,
	jwtTTL time.Duration,
	publicURL string,
	log *zap.SugaredLogger,
) *UserService {
	return &UserService{
		users:     users,
		tokens:    tokens,
		jobs:      jobs,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
		publicURL: publicURL,
		log:       log,
	}
}

type RegisterInput struct {
	Name         string
	Username     string
	Email        string
	Password     string
	ProfileImage string
}

// Register creates the user, issues a verification token and queues the
// verification email.
func (s *UserService) Register(ctx context.Context, in RegisterInput) error {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return fmt.Errorf("email already in use: %w", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return fmt.Errorf("username has been chosen: %w", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	salt, err := utils.GenSalt()
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(in.Password, salt)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		Password:     hash,
		Salt:         salt,
		ProfileImage: in.ProfileImage,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	token := utils.GenerateToken()
	expires := time.Now().Add(verificationTTL)
	if err := s.tokens.CreateVerification(ctx, &models.VerificationToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: expires,
	}); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/users/verify/%s", s.publicURL, token)
	body, err := mailer.RegisterEmailBody(user.Name, link, expires)
	if err != nil {
		return err
	}
	s.enqueueEmail(ctx, models.EmailJob{
		To:      user.Email,
		Subject: "verify your email address",
		Body:    body,
	})
	return nil
}

// VerifyEmail consumes a verification token and activates the user.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	t, err := s.tokens.FindVerification(ctx, token)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}
	if err != nil {
		return err
	}
	if t.IsConfirmed {
		return fmt.Errorf("token already used: %w", apperrors.ErrUnauthorized)
	}
	if t.ExpiresAt.Before(time.Now()) {
		return fmt.Errorf("token expired: %w", apperrors.ErrUnauthorized)
	}

	user, err := s.users.FindByID(ctx, t.UserID)
	if err != nil {
		return err
	}
	user.IsVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.tokens.ConfirmVerification(ctx, token)
}

// Login checks credentials and issues a signed access token. Wrong
// email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", nil, fmt.Errorf("invalid username or password: %w", apperrors.ErrBadRequest)
	}
	if err != nil {
		return "", nil, err
	}

	ok, err := utils.ComparePassword(password, user.Password, user.Salt)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, fmt.Errorf("invalid username or password: %w", apperrors.ErrBadRequest)
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Username, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	user.Sanitize()
	return token, user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Sanitize()
	return user, nil
}

// SendPasswordResetCode issues a reset code and queues the reset email.
func (s *UserService) SendPasswordResetCode(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("user does not exist: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return err
	}

	code, err := utils.GenerateCode()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetCodeTTL)
	if err := s.tokens.CreateResetCode(ctx, &models.ResetCode{
		Code:      code,
		UserID:    user.ID,
		ExpiresAt: expires,
	}); err != nil {
		return err
	}

	body, err := mailer.ResetEmailBody(user.Name, code, expires)
	if err != nil {
		return err
	}
	s.enqueueEmail(ctx, models.EmailJob{
		To:      user.Email,
		Subject: "Password Reset",
		Body:    body,
	})
	return nil
}

// VerifyResetCode checks a code without consuming it.
func (s *UserService) VerifyResetCode(ctx context.Context, code string) error {
	c, err := s.tokens.FindResetCode(ctx, code)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}
	if err != nil {
		return err
	}
	if c.IsUsed {
		return fmt.Errorf("token already used: %w", apperrors.ErrUnauthorized)
	}
	if c.ExpiresAt.Before(time.Now()) {
		return fmt.Errorf("expired token: %w", apperrors.ErrUnauthorized)
	}
	return nil
}

// ResetPassword consumes a valid code and replaces the password. The
// previous password cannot be reused.
func (s *UserService) ResetPassword(ctx context.Context, code, newPassword string) error {
	if err := s.VerifyResetCode(ctx, code); err != nil {
		return err
	}
	c, err := s.tokens.FindResetCode(ctx, code)
	if err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, c.UserID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}
	if err != nil {
		return err
	}

	if err := s.replacePassword(ctx, user, newPassword); err != nil {
		return err
	}
	return s.tokens.MarkResetCodeUsed(ctx, code)
}

func (s *UserService) ChangeUsername(ctx context.Context, userID primitive.ObjectID, newUsername string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Username == newUsername {
		return fmt.Errorf("cannot use the same username as before: %w", apperrors.ErrConflict)
	}
	user.Username = newUsername
	return s.users.Update(ctx, user)
}

func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.replacePassword(ctx, user, newPassword)
}

// replacePassword rejects the previous password, then rehashes with a
// fresh salt.
func (s *UserService) replacePassword(ctx context.Context, user *models.User, newPassword string) error {
	same, err := utils.ComparePassword(newPassword, user.Password, user.Salt)
	if err != nil {
		return err
	}
	if same {
		return fmt.Errorf("cannot use your previous password: %w", apperrors.ErrConflict)
	}

	salt, err := utils.GenSalt()
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword, salt)
	if err != nil {
		return err
	}
	user.Salt = salt
	user.Password = hash
	return s.users.Update(ctx, user)
}

// enqueueEmail submits a job and swallows transport failures; a broken
// queue degrades delivery, never the request.
func (s *UserService) enqueueEmail(ctx context.Context, job models.EmailJob) {
	if err := s.jobs.Enqueue(ctx, job); err != nil {
		s.log.Warnf("enqueue email to=%s subject=%q: %v", job.To, job.Subject, err)
	}
}
