package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskloom/todo-backend/internal/dto"
	"github.com/taskloom/todo-backend/internal/identity"
	"github.com/taskloom/todo-backend/internal/models"
	"github.com/taskloom/todo-backend/internal/token"
	"github.com/taskloom/todo-backend/internal/validation"
)

var (
	ErrEmailTaken = errors.New("user with this email already registered")
	// ErrInvalidCredentials deliberately covers both unknown email and wrong
	// password.
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrProviderVerification = errors.New("identity provider verification failed")
)

type AuthService struct {
	db       *gorm.DB
	tokens   *token.Service
	google   identity.GoogleVerifier
	facebook *identity.FacebookClient
}

func NewAuthService(db *gorm.DB, tokens *token.Service, google identity.GoogleVerifier, facebook *identity.FacebookClient) *AuthService {
	return &AuthService{db: db, tokens: tokens, google: google, facebook: facebook}
}

// Register creates a user with a bcrypt-hashed password and returns the user
// plus an issued token.
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, string, error) {
	name, email, password, err := validation.Register(req.Name, req.Email, req.Password)
	if err != nil {
		return nil, "", err
	}

	var existing models.User
	if err := s.db.Where("email = ?", string(email)).First(&existing).Error; err == nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     string(name),
		Email:    string(email),
		Password: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return &user, tok, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (string, error) {
	if err := validation.Credentials(req.Email, req.Password); err != nil {
		return "", err
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

// GoogleSignIn verifies the ID token with Google and signs the verified email
// in, provisioning an account on first login.
func (s *AuthService) GoogleSignIn(ctx context.Context, req *dto.GoogleSignInRequest) (string, error) {
	if req.TokenID == "" {
		return "", ErrProviderVerification
	}

	claims, err := s.google.Verify(ctx, req.TokenID)
	if err != nil {
		slog.Error("google token verification failed", "error", err)
		return "", ErrProviderVerification
	}
	if !claims.EmailVerified || claims.Email == "" {
		return "", ErrProviderVerification
	}

	return s.federatedSignIn(claims.Name, claims.Email)
}

// FacebookSignIn fetches the caller's Graph API profile and signs the
// associated email in, provisioning an account on first login.
func (s *AuthService) FacebookSignIn(ctx context.Context, req *dto.FacebookSignInRequest) (string, error) {
	if req.UserID == "" || req.AccessToken == "" {
		return "", ErrProviderVerification
	}

	profile, err := s.facebook.Profile(ctx, req.UserID, req.AccessToken)
	if err != nil {
		slog.Error("facebook profile fetch failed", "error", err)
		return "", ErrProviderVerification
	}
	if profile.Email == "" {
		return "", ErrProviderVerification
	}

	return s.federatedSignIn(profile.Name, profile.Email)
}

func (s *AuthService) federatedSignIn(name, email string) (string, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("failed to look up user: %w", err)
		}
		user, err = s.provisionUser(name, email)
		if err != nil {
			return "", err
		}
	}
	return s.tokens.Issue(user.ID)
}

// provisionUser creates an account with a random password hash. The plaintext
// is discarded, so password login stays unusable for provider-backed accounts.
func (s *AuthService) provisionUser(name, email string) (models.User, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return models.User{}, fmt.Errorf("failed to generate random password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(base64.URLEncoding.EncodeToString(raw)), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
