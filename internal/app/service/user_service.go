package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/iPad7/gantt-4team/internal/core/domain"
	"github.com/iPad7/gantt-4team/internal/core/ports"
)

const maxUsernameLength = 150

type UserService struct {
	userRepository ports.UserRepository
	hashCost       int
}

func NewUserService(userRepository ports.UserRepository) *UserService {
	return &UserService{userRepository: userRepository, hashCost: bcrypt.DefaultCost}
}

var _ ports.UserService = (*UserService)(nil)

func (s *UserService) CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || len(username) > maxUsernameLength {
		return domain.User{}, domain.NewValidationError("username", "must be between 1 and 150 characters")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.User{}, domain.NewValidationError("name", "must not be empty")
	}
	if input.Password == "" {
		return domain.User{}, domain.NewValidationError("password", "must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.userRepository.CreateUser(ctx, domain.User{
		Username:     username,
		Name:         name,
		IsAdmin:      input.IsAdmin,
		PasswordHash: string(hash),
	})
	if err != nil {
		return domain.User{}, err
	}

	zap.L().Info("user created", zap.Uint64("user_id", id), zap.String("username", username))
	return s.userRepository.GetUser(ctx, id)
}

func (s *UserService) GetUser(ctx context.Context, id uint64) (domain.User, error) {
	return s.userRepository.GetUser(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepository.ListUsers(ctx)
}

// AuthService exchanges credentials for a signed HS256 token whose subject is
// the user id, and resolves such tokens back to the user id.
type AuthService struct {
	userRepository ports.UserRepository
	secret         []byte
	ttl            time.Duration
	now            func() time.Time
}

func NewAuthService(userRepository ports.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		secret:         []byte(secret),
		ttl:            ttl,
		now:            time.Now,
	}
}

var _ ports.AuthService = (*AuthService)(nil)

func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.User{}, domain.ErrInvalidCredentials
		}
		return "", domain.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.User{}, domain.ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) ParseToken(token string) (uint64, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return 0, domain.ErrInvalidCredentials
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, domain.ErrInvalidCredentials
	}
	return userID, nil
}
