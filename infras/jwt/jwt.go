package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bayleaf/config"
	"bayleaf/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaim  = errors.New("invalid token claim")
	ErrMissingSecret = errors.New("token secret is not configured")
)

const (
	defaultAccessExpireMin  = 15
	defaultRefreshExpireMin = 7 * 24 * 60
	bearerPrefix            = "Bearer "
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims identify a staff member.
type Claims struct {
	Email string    `json:"email"`
	Role  string    `json:"role,omitempty"`
	Type  TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(subject, email, role string) (*TokenPair, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
	RefreshTokens(refreshToken string) (*TokenPair, error)
}

type Service struct {
	issuer          string
	accessSecret    []byte
	refreshSecret   []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
}

func New(cfg *config.Config) JWT {
	accessMin := cfg.JWT.AccessExpireMin
	if accessMin <= 0 {
		accessMin = defaultAccessExpireMin
	}

	refreshMin := cfg.JWT.RefreshExpireMin
	if refreshMin <= 0 {
		refreshMin = defaultRefreshExpireMin
	}

	return &Service{
		issuer:          cfg.App.Name,
		accessSecret:    []byte(cfg.JWT.AccessSecret),
		refreshSecret:   []byte(cfg.JWT.RefreshSecret),
		accessLifetime:  time.Duration(accessMin) * time.Minute,
		refreshLifetime: time.Duration(refreshMin) * time.Minute,
	}
}

func (s *Service) GenerateTokenPair(subject, email, role string) (*TokenPair, error) {
	now := timezone.Now()

	accessToken, err := s.generateToken(subject, email, role, AccessToken, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateToken(subject, email, role, RefreshToken, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    strings.TrimSpace(bearerPrefix),
		ExpiresIn:    int64(s.accessLifetime.Seconds()),
	}, nil
}

func (s *Service) settings(tokenType TokenType) ([]byte, time.Duration, error) {
	var (
		secret   []byte
		lifetime time.Duration
	)

	switch tokenType {
	case AccessToken:
		secret, lifetime = s.accessSecret, s.accessLifetime
	case RefreshToken:
		secret, lifetime = s.refreshSecret, s.refreshLifetime
	default:
		return nil, 0, fmt.Errorf("unknown token type: %s", tokenType)
	}

	if len(secret) == 0 {
		return nil, 0, ErrMissingSecret
	}

	return secret, lifetime, nil
}

func (s *Service) generateToken(subject, email, role string, tokenType TokenType, issuedAt time.Time) (string, error) {
	secret, lifetime, err := s.settings(tokenType)
	if err != nil {
		return "", err
	}

	claims := Claims{
		Email: email,
		Role:  role,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.issuer,
			Subject:   subject,
			ID:        uuid.NewString(),
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	secret, _, err := s.settings(tokenType)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != tokenType {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

func (s *Service) RefreshTokens(refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(refreshToken, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	return s.GenerateTokenPair(claims.Subject, claims.Email, claims.Role)
}

// ExtractTokenFromHeader extracts the token from an Authorization header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	token, ok := strings.CutPrefix(authHeader, bearerPrefix)
	if !ok || token == "" {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	return token, nil
}
