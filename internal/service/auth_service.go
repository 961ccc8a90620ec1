package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shelfcloud/internal/api/dto/v1/auth"
	"shelfcloud/internal/api/mapper"
	"shelfcloud/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and verifies bearer sessions backed by HS256 JWTs.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtSecret  []byte
	sessionTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.SessionResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &mapper.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issueSession(user)
}

func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.SessionResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}
	return s.issueSession(user)
}

// VerifySession parses a bearer token and loads the account it names.
func (s *AuthService) VerifySession(ctx context.Context, tokenStr string) (*mapper.User, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueSession(user *mapper.User) (*auth.SessionResponse, error) {
	now := time.Now()
	expiresAt := now.Add(s.sessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return &auth.SessionResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      mapper.ToUserResponse(user),
	}, nil
}
