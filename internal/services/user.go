package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	appErrors "github.com/poshakbd/storefront/internal/errors"
	"github.com/poshakbd/storefront/internal/models"
	repository "github.com/poshakbd/storefront/internal/repositories"
	"github.com/poshakbd/storefront/pkg/sendgrid"
)

// SignInRateLimiter throttles profile syncs; the redis sliding window
// implementation lives in repositories/redis.
type SignInRateLimiter interface {
	CheckSignInRateLimit(ctx context.Context, uid string) (bool, int, int, error)
}

type UserService interface {
	// SyncProfile upserts the identity-provider profile and mints a session
	// token. The provider's uid is the stable user key everywhere downstream.
	SyncProfile(ctx context.Context, req *models.SyncUserRequest) (*models.SessionResponse, error)
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

type userService struct {
	repo     repository.UserRepository
	limiter  SignInRateLimiter
	mailer   sendgrid.EmailClient
	jwtKey   []byte
	tokenTTL time.Duration
}

func NewUserService(repo repository.UserRepository, limiter SignInRateLimiter, mailer sendgrid.EmailClient, jwtKey []byte, tokenTTL time.Duration) UserService {
	return &userService{
		repo:     repo,
		limiter:  limiter,
		mailer:   mailer,
		jwtKey:   jwtKey,
		tokenTTL: tokenTTL,
	}
}

func (s *userService) SyncProfile(ctx context.Context, req *models.SyncUserRequest) (*models.SessionResponse, error) {

	allowed, _, retryAfter, err := s.limiter.CheckSignInRateLimit(ctx, req.UID)
	if err != nil {
		return nil, appErrors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.SessionResponse{
			Success:    false,
			Message:    "Too many sign-in attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	user := &models.User{
		UID:      req.UID,
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
	}

	created, err := s.repo.UpsertUser(ctx, user)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to sync user profile").WithError(err)
	}

	if created && s.mailer != nil {
		// Best effort: a failed welcome email never blocks sign-in.
		if err := s.mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
			slog.Warn("Failed to send welcome email",
				slog.String("uid", user.UID),
				slog.String("error", err.Error()))
		}
	}

	claims := &models.Claims{
		UID:   user.UID,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate session token").WithError(err)
	}

	return &models.SessionResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(time.Until(claims.ExpiresAt.Time).Seconds()),
		User:      user,
	}, nil
}

func (s *userService) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {

	user, err := s.repo.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, appErrors.NotFoundError("User not found").WithError(err)
	}

	return user, nil
}
