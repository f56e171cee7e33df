package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"bayleaf/config"
	"bayleaf/infras/jwt"
	"bayleaf/infras/otel"
	"bayleaf/shared/constant"
	"bayleaf/shared/failure"
	"bayleaf/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Auth guards the staff endpoints.
type Auth interface {
	// Staff accepts either a bearer access token or the internal API key.
	Staff(next http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	cfg        *config.Config
}

func NewAuthMiddleware(jwtService jwt.JWT, otel otel.Otel, cfg *config.Config) Auth {
	return &authImpl{
		jwtService: jwtService,
		otel:       otel,
		cfg:        cfg,
	}
}

func (m *authImpl) Staff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		if apiKey := request.Header.Get(constant.RequestHeaderAPIKey); apiKey != "" {
			scope.SetAttribute("http.source", "internal")

			if m.cfg.App.APIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.App.APIKey)) != 1 {
				scope.TraceError(failure.ForbiddenError)
				scope.End()
				response.WithError(writer, failure.ForbiddenError)

				return
			}

			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleService)

			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		scope.SetAttribute("http.source", "client")

		tokenString, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			err := failure.Unauthorized(err.Error())
			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			err := failure.Unauthorized(tokenMessage(err))
			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		if claims.Email == "" || claims.Role != constant.RoleStaff {
			log.Warn().Str("subject", claims.Subject).Str("role", claims.Role).Msg("token without staff claims")

			scope.TraceError(failure.ForbiddenError)
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.Subject)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func tokenMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "Invalid token claims"
	default:
		return "Token validation failed"
	}
}
