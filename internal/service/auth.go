package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipe-share/backend/internal/models"
	"github.com/pageza/recipe-share/backend/internal/types"
)

// DefaultTokenTTL is used when NewAuthService gets a zero TTL.
const DefaultTokenTTL = 24 * time.Hour

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL == 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*types.AuthResponse, error) {
	req := types.RegisterRequest{
		Username: strings.TrimSpace(username),
		Email:    normalizeEmail(email),
		Password: password,
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var existing models.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR username = ?", req.Email, req.Username).
		First(&existing).Error
	switch {
	case err == nil:
		if existing.Email == req.Email {
			return nil, ErrConflict("email is already registered")
		}
		return nil, ErrConflict("username is already taken")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrInternal("failed to look up user", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrInternal("failed to hash password", err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// A concurrent registration can still win the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict("username or email is already registered")
		}
		return nil, ErrInternal("failed to create user", err)
	}

	return s.issue(&user)
}

// Login fails with ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *AuthService) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	req := types.LoginRequest{Email: normalizeEmail(email), Password: password}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, ErrInternal("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(&user)
}

func (s *AuthService) issue(user *models.User) (*types.AuthResponse, error) {
	token, err := s.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, ErrInternal("failed to issue token", err)
	}
	return &types.AuthResponse{
		Token: token,
		User:  types.NewUserSummary(user),
	}, nil
}

// GenerateToken signs an HS256 token for the user valid for the configured
// TTL.
func (s *AuthService) GenerateToken(userID uuid.UUID, username string) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   userID,
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return findUser(s.db.WithContext(ctx), userID)
}

// findUser loads a user by id on db, which may be a transaction.
func findUser(db *gorm.DB, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("user")
		}
		return nil, ErrInternal("failed to load user", err)
	}
	return &user, nil
}
