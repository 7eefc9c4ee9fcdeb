package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"spreadedge/internal/token"
	"spreadedge/internal/users"
	"spreadedge/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, username, password string) (*TokenResponse, error)
	Refresh(ctx context.Context, subject string) (*AccessTokenResponse, error)
	Me(ctx context.Context, subject string) (*MeResponse, error)
}

// dummyHash is compared against on unknown usernames so a miss costs the
// same bcrypt work as a wrong password
var dummyHash = sync.OnceValue(func() string {
	hash, err := token.HashPassword("spreadedge-missing-account")
	if err != nil {
		panic(err)
	}
	return hash
})

type service struct {
	repo   Repository
	tokens *token.Service
	log    *logger.Logger

	verifyPassword func(plain, hash string) bool
}

func NewService(repo Repository, tokens *token.Service, log *logger.Logger) Service {
	return &service{
		repo:           repo,
		tokens:         tokens,
		log:            log,
		verifyPassword: token.VerifyPassword,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := token.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		Email:    req.Email,
		FullName: req.FullName,
		Password: hashed,
		Role:     users.RoleUser,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "User registered", "user_id", user.ID.String())

	return &UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.verifyPassword(password, dummyHash())
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.verifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	claims := token.Claims{token.ClaimSubject: user.Email}

	access, err := s.tokens.CreateAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.CreateRefreshToken(claims)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	s.log.LogAuthSuccess(ctx, user.ID.String(), "password")

	return &TokenResponse{
		AccessToken:  access,
		TokenType:    tokenTypeBearer,
		RefreshToken: refresh,
	}, nil
}

func (s *service) Refresh(_ context.Context, subject string) (*AccessTokenResponse, error) {
	access, err := s.tokens.CreateAccessToken(token.Claims{token.ClaimSubject: subject})
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	return &AccessTokenResponse{
		AccessToken: access,
		TokenType:   tokenTypeBearer,
	}, nil
}

// Me echoes the subject. Credentials stay valid for their lifetime even if the
// account behind them is gone.
func (s *service) Me(_ context.Context, subject string) (*MeResponse, error) {
	return &MeResponse{Email: subject}, nil
}
