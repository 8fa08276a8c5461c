package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/repository"
)

// AuthService verifies credentials and issues/verifies session tokens.
// Tokens are stateless HS256 JWTs carrying subject id, role and expiry;
// verification needs only the signing secret, no store lookup.
type AuthService struct {
	pflegerRepo repository.PflegerRepository
	jwtSecret   []byte
	jwtTTL      time.Duration
}

// NewAuthService creates an AuthService. The signing secret and token TTL
// are explicit construction parameters, not ambient environment lookups.
func NewAuthService(pflegerRepo repository.PflegerRepository, jwtSecret string, jwtTTL time.Duration) (*AuthService, error) {
	if pflegerRepo == nil {
		panic("PflegerRepository cannot be nil for AuthService")
	}
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT secret key cannot be empty")
	}
	if jwtTTL <= 0 {
		jwtTTL = 24 * time.Hour
	}
	return &AuthService{
		pflegerRepo: pflegerRepo,
		jwtSecret:   []byte(jwtSecret),
		jwtTTL:      jwtTTL,
	}, nil
}

// Login checks name and password and issues a signed token on success.
// Unknown name and wrong password both yield ErrAuthenticationFailed with
// no distinguishing detail.
func (s *AuthService) Login(ctx context.Context, name, password string) (string, error) {
	logCtx := logrus.WithField("name", name)

	pfleger, err := s.pflegerRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Login attempt failed: Pfleger not found")
		} else {
			logCtx.WithError(err).Warn("Login attempt failed: Error finding pfleger")
		}
		return "", ErrAuthenticationFailed
	}
	if pfleger == nil {
		logCtx.Warn("Login attempt failed: Repository returned nil pfleger without error")
		return "", ErrAuthenticationFailed
	}

	if !checkPassword(password, pfleger.Password) {
		logCtx.Warn("Login attempt failed: Invalid password")
		return "", ErrAuthenticationFailed
	}

	token, err := s.generateJWT(pfleger.ID, pfleger.Role())
	if err != nil {
		logCtx.WithError(err).Error("Failed to sign session token during login")
		return "", ErrInternalServer
	}

	logCtx.WithField("pfleger_id", pfleger.ID).Info("Pfleger logged in successfully")
	return token, nil
}

// VerifyToken checks signature and expiry and returns the decoded claims.
// Expired and tampered tokens fail with the same ErrInvalidToken.
func (s *AuthService) VerifyToken(tokenStr string) (*LoginResource, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	expFloat, _ := claims["exp"].(float64)
	if sub == "" || (role != domain.RoleAdmin && role != domain.RoleUser) {
		return nil, ErrInvalidToken
	}

	return &LoginResource{
		ID:   sub,
		Role: role,
		Exp:  int64(expFloat),
	}, nil
}

// TTL returns the configured token lifetime.
func (s *AuthService) TTL() time.Duration {
	return s.jwtTTL
}

func (s *AuthService) generateJWT(pflegerID, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  pflegerID,
		"role": role,
		"exp":  now.Add(s.jwtTTL).Unix(),
		"iat":  now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// hashPassword is the single hash-on-write rule: every path that persists a
// password (create, update, seed) goes through it.
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

// checkPassword verifies a candidate password against the stored hash.
func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
