package service

import (
	"context"
	"fmt"
	"strings"

	"bayleaf/config"
	"bayleaf/infras/jwt"
	"bayleaf/infras/metrics"
	"bayleaf/infras/otel"
	"bayleaf/internal/domains/auth/model/dto"
	"bayleaf/shared/constant"
	"bayleaf/shared/failure"
	"bayleaf/shared/password"

	"github.com/rs/zerolog/log"
)

const invalidCredentials = "invalid email or password"

// Auth signs in the single staff account configured through STAFF_EMAIL and STAFF_PASSWORD_HASH.
type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	metrics    *metrics.Metrics
}

func New(cfg *config.Config, otel otel.Otel, jwt jwt.JWT, metrics *metrics.Metrics) Auth {
	return &serviceImpl{
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		metrics:    metrics,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	staff := s.cfg.Staff
	if staff.Email == "" || staff.PasswordHash == "" {
		return res, failure.ServiceUnavailable("staff login is not configured") // nolint:wrapcheck
	}

	// The hash is checked even for an unknown email so both cases take the same time.
	passwordErr := password.Verify(req.Password, staff.PasswordHash)

	if !strings.EqualFold(req.Email, staff.Email) || passwordErr != nil {
		s.metrics.FailedLogins.Inc()
		log.Warn().Str("email", req.Email).Msg("failed staff login attempt")

		return res, failure.Unauthorized(invalidCredentials) // nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(staff.Email, staff.Email, constant.RoleStaff)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	log.Info().Str("email", staff.Email).Msg("staff signed in")

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}
