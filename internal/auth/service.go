package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marqlabs/marq/internal/domain"
	"github.com/marqlabs/marq/internal/logger"
	"github.com/marqlabs/marq/internal/store"
)

// Credentials is what a successful register or login returns.
type Credentials struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
	Token string             `json:"token"`
}

// Service handles account registration and login.
type Service struct {
	users  store.UserStore
	tokens *TokenManager
	log    logger.Logger
	now    func() time.Time
}

func NewService(users store.UserStore, tokens *TokenManager, log logger.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
}

// Register creates an account with a bcrypt-hashed password and issues
// a token. Duplicate emails return domain.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, email, password string) (*Credentials, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		Email:     email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("user registered", logger.String("email", email))
	return s.issueFor(user)
}

// Login verifies credentials and issues a token. Unknown email and
// wrong password both return domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Credentials, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(user.Password, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueFor(user)
}

func (s *Service) issueFor(user *domain.User) (*Credentials, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Credentials{ID: user.ID, Email: user.Email, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
