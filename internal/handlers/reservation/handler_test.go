package reservation_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bayleaf/config"
	jwtMocks "bayleaf/infras/jwt/mocks"
	otelMocks "bayleaf/infras/otel/mocks"
	"bayleaf/internal/domains/reservation/mocks"
	"bayleaf/internal/domains/reservation/model/dto"
	"bayleaf/internal/handlers/reservation"
	"bayleaf/shared/constant"
	gDto "bayleaf/shared/dto"
	"bayleaf/shared/failure"
	"bayleaf/transport/http/middleware"
)

const (
	apiKey        = "internal-key"
	reservationID = "0f8c2d1e-7b7a-4a52-8c3e-1d9a6b2f4e90"
	missingID     = "9a1b7c3d-2e4f-4a6b-8c0d-1e2f3a4b5c6d"
)

func newRouter(t *testing.T) (*chi.Mux, *mocks.MockReservationService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockReservationService(ctrl)

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	auth := middleware.NewAuthMiddleware(jwtMocks.NewMockJWT(ctrl), otelMocks.NewOtel(), cfg)
	handler := reservation.New(svc, auth, otelMocks.NewOtel())

	r := chi.NewRouter()
	r.Route("/v1", handler.Router)

	return r, svc
}

func do(r http.Handler, method, path, body string, staff bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if staff {
		req.Header.Set(constant.RequestHeaderAPIKey, apiKey)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestReservationHandler_RequiresStaff(t *testing.T) {
	r, _ := newRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/v1/reservations", "", false).Code)
}

func TestReservationHandler_GetReservations(t *testing.T) {
	r, svc := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), "pending").DoAndReturn(
		func(_ any, params gDto.QueryParams, _ string) (dto.GetReservationsResponse, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, constant.DefaultValueLimit, params.Limit)

			return dto.GetReservationsResponse{TotalData: 11, TotalPage: 2}, nil
		})

	rec := do(r, http.MethodGet, "/v1/reservations?status=pending&page=2", "", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_data":11`)
}

func TestReservationHandler_Create(t *testing.T) {
	body := `{"name":"Jane Doe","email":"jane@example.com","date":"2099-01-01","time":"19:00","guests":4}`

	t.Run("created", func(t *testing.T) {
		r, svc := newRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.CreateReservationResponse{}, nil)

		assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/v1/reservations", body, true).Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		r, svc := newRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.CreateReservationResponse{Duplicate: true}, nil)

		assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/v1/reservations", body, true).Code)
	})

	t.Run("too many guests", func(t *testing.T) {
		r, _ := newRouter(t)

		rec := do(r, http.MethodPost, "/v1/reservations", strings.Replace(body, `"guests":4`, `"guests":9`, 1), true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReservationHandler_UpdateStatus(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		r, svc := newRouter(t)
		svc.EXPECT().UpdateStatus(gomock.Any(), reservationID, dto.UpdateStatusRequest{Status: "confirmed"}).
			Return(dto.ReservationResponse{ID: reservationID, Status: "confirmed"}, nil)

		rec := do(r, http.MethodPatch, "/v1/reservations/"+reservationID+"/status", `{"status":"confirmed"}`, true)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("cancelled is final", func(t *testing.T) {
		r, svc := newRouter(t)
		svc.EXPECT().UpdateStatus(gomock.Any(), reservationID, gomock.Any()).
			Return(dto.ReservationResponse{}, failure.Conflict("cancelled reservations cannot change status"))

		rec := do(r, http.MethodPatch, "/v1/reservations/"+reservationID+"/status", `{"status":"pending"}`, true)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		r, _ := newRouter(t)

		rec := do(r, http.MethodPatch, "/v1/reservations/"+reservationID+"/status", `{"status":"seated"}`, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReservationHandler_GetByID(t *testing.T) {
	r, svc := newRouter(t)
	svc.EXPECT().Get(gomock.Any(), missingID).Return(dto.ReservationResponse{}, failure.NotFound("reservation not found"))

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/v1/reservations/"+missingID, "", true).Code)
}

func TestReservationHandler_RejectsMalformedID(t *testing.T) {
	r, _ := newRouter(t)

	for _, path := range []string{
		"/v1/reservations/missing",
		"/v1/reservations/1;DROP%20TABLE%20reservations",
		"/v1/reservations/" + reservationID[:8],
	} {
		rec := do(r, http.MethodGet, path, "", true)

		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "reservation not found")
	}

	rec := do(r, http.MethodPatch, "/v1/reservations/r-1/status", `{"status":"confirmed"}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
