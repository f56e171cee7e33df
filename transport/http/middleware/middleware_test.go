package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bayleaf/config"
	"bayleaf/infras/jwt"
	jwtMocks "bayleaf/infras/jwt/mocks"
	"bayleaf/infras/metrics"
	otelMocks "bayleaf/infras/otel/mocks"
	"bayleaf/shared/cache"
	cacheMocks "bayleaf/shared/cache/mocks"
	"bayleaf/shared/constant"
	"bayleaf/transport/http/middleware"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func limitedConfig(maxReqs int) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxReqs
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestRateLimit_InProcessWithoutRedis(t *testing.T) {
	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), limitedConfig(2), cache.NewRedisCache(nil, otelMocks.NewOtel()), metrics.New())
	h := mw.RateLimit()(ok)

	newReq := func(ip string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/v1/contact/reservations", nil)
		req.RemoteAddr = ip + ":41234"

		return req
	}

	assert.Equal(t, http.StatusOK, serve(h, newReq("10.0.0.1")).Code)
	assert.Equal(t, http.StatusOK, serve(h, newReq("10.0.0.1")).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, newReq("10.0.0.1")).Code)

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, serve(h, newReq("10.0.0.2")).Code)
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), limitedConfig(2), cache.NewRedisCache(nil, otelMocks.NewOtel()), metrics.New())
	h := mw.RateLimit()(ok)

	codes := []int{}

	for _, spoofed := range []string{"198.51.100.1", "198.51.100.2", "198.51.100.3", "198.51.100.4"} {
		req := httptest.NewRequest(http.MethodPost, "/v1/contact/reservations", nil)
		req.RemoteAddr = "203.0.113.9:52000"
		req.Header.Set(constant.RequestHeaderForwardedFor, spoofed)
		req.Header.Set(constant.RequestHeaderRealIP, spoofed)

		codes = append(codes, serve(h, req).Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_TrustedProxy(t *testing.T) {
	cfg := limitedConfig(1)
	cfg.App.TrustedProxies = []string{"10.0.0.0/8", "192.0.2.7"}

	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, cache.NewRedisCache(nil, otelMocks.NewOtel()), metrics.New())
	h := mw.RateLimit()(ok)

	newReq := func(peer, xff string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/v1/contact/reservations", nil)
		req.RemoteAddr = peer + ":443"
		req.Header.Set(constant.RequestHeaderForwardedFor, xff)

		return req
	}

	// the client is the right-most hop that is not a proxy
	assert.Equal(t, http.StatusOK, serve(h, newReq("10.1.2.3", "203.0.113.50, 10.9.9.9")).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, newReq("192.0.2.7", "1.1.1.1, 203.0.113.50")).Code)

	assert.Equal(t, http.StatusOK, serve(h, newReq("10.1.2.3", "203.0.113.51")).Code)
}

func TestRateLimit_Redis(t *testing.T) {
	ctrl := gomock.NewController(t)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), limitedConfig(3), redis, metrics.New())
	h := mw.RateLimit()(ok)

	t.Run("first request", func(t *testing.T) {
		redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		redis.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/menu-items", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("over the limit", func(t *testing.T) {
		redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, _ string, value any) error {
				*(value.(*int)) = 3

				return nil
			})

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/v1/menu-items", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}

func TestRateLimit_Disabled(t *testing.T) {
	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, cache.NewRedisCache(nil, otelMocks.NewOtel()), metrics.New())
	h := mw.RateLimit()(ok)

	for range 5 {
		assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	}
}

func TestRecover(t *testing.T) {
	m := metrics.New()
	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, cache.NewRedisCache(nil, otelMocks.NewOtel()), m)

	h := mw.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.InDelta(t, 1, testutil.ToFloat64(m.PanicsRecovered), 0)
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	m := metrics.New()
	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, cache.NewRedisCache(nil, otelMocks.NewOtel()), m)

	r := chi.NewRouter()
	r.Use(mw.Tracing, mw.Metrics)
	r.Get("/v1/reservations/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/v1/reservations/abc", nil))

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
	assert.Equal(t, uint64(1), histogramCount(t, m, http.MethodGet, "/v1/reservations/{id}", "404"))
}

func histogramCount(t *testing.T, m *metrics.Metrics, labels ...string) uint64 {
	t.Helper()

	families, err := m.Registry().Gather()
	assert.NoError(t, err)

	for _, family := range families {
		if family.GetName() != "bayleaf_http_request_duration_seconds" {
			continue
		}

		for _, metric := range family.GetMetric() {
			values := map[string]string{}
			for _, pair := range metric.GetLabel() {
				values[pair.GetName()] = pair.GetValue()
			}

			if values["method"] == labels[0] && values["route"] == labels[1] && values["code"] == labels[2] {
				return metric.GetHistogram().GetSampleCount()
			}
		}
	}

	return 0
}

func TestAuth_Staff(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	tests := []struct {
		name      string
		header    map[string]string
		setupMock func(m *jwtMocks.MockJWT)
		wantCode  int
	}{
		{
			name:     "api key",
			header:   map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong api key",
			header:   map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "no credentials",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed authorization header",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "staff token",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("good", jwt.AccessToken).
					Return(&jwt.Claims{Email: "staff@bay-leaf.eu", Role: constant.RoleStaff}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "expired token",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer old"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "token without staff role",
			header: map[string]string{constant.RequestHeaderAuthorization: "Bearer guest"},
			setupMock: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken("guest", jwt.AccessToken).
					Return(&jwt.Claims{Email: "guest@example.com", Role: "guest"}, nil)
			},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			jwtService := jwtMocks.NewMockJWT(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(jwtService)
			}

			h := middleware.NewAuthMiddleware(jwtService, otelMocks.NewOtel(), cfg).Staff(ok)

			req := httptest.NewRequest(http.MethodGet, "/v1/reservations", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tt.wantCode, serve(h, req).Code)
		})
	}
}
