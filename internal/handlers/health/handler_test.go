package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bayleaf/config"
	"bayleaf/infras/metrics"
	otelMocks "bayleaf/infras/otel/mocks"
	contactFormMocks "bayleaf/internal/domains/contactform/mocks"
	"bayleaf/internal/domains/contactform/model/dto"
	contactFormService "bayleaf/internal/domains/contactform/service"
	contactMessageMocks "bayleaf/internal/domains/contactmessage/mocks"
	contactMessageService "bayleaf/internal/domains/contactmessage/service"
	menuItemMocks "bayleaf/internal/domains/menuitem/mocks"
	reservationMocks "bayleaf/internal/domains/reservation/mocks"
	"bayleaf/internal/domains/reservation/model"
	"bayleaf/internal/handlers/health"
	"bayleaf/shared/status"
)

const storeError = `pq: password authentication failed for user "bayleaf_admin" at 10.0.3.17`

func serve(handler health.Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	return rec
}

func TestHealth_ReportsErrorKindOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	ot := otelMocks.NewOtel()

	repo := reservationMocks.NewMockReservation(ctrl)
	repo.EXPECT().Available().Return(true)
	repo.EXPECT().InsertOnce(gomock.Any(), gomock.Any()).Return(model.Reservation{}, false, errors.New(storeError))

	cfg := &config.Config{}
	cfg.Reservation.SubmitTimeoutSeconds = 5

	contactForm := contactFormService.New(repo, contactMessageMocks.NewMockContactMessage(ctrl),
		contactFormMocks.NewMockNotifier(ctrl), metrics.New(), cfg, ot)

	_, err := contactForm.SubmitReservation(context.Background(), dto.SubmitReservationRequest{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Date:   "2099-01-01",
		Time:   "19:00",
		Guests: 2,
	})
	require.Error(t, err)
	require.Contains(t, contactForm.Status().Error, "10.0.3.17")

	reservations := reservationMocks.NewMockReservationService(ctrl)
	reservations.EXPECT().Status().Return(status.Snapshot{Loading: true})

	menuItems := menuItemMocks.NewMockMenuItemService(ctrl)
	menuItems.EXPECT().Status().Return(status.Snapshot{Error: "table store is not configured", Code: http.StatusServiceUnavailable})

	contactMessages := contactMessageService.New(contactMessageMocks.NewMockContactMessage(ctrl), ot)

	rec := serve(health.New(contactForm, reservations, contactMessages, menuItems))

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"mode":"connected"`)
	assert.Contains(t, body, `"contact_form":{"loading":false,"error":"internal"}`)
	assert.Contains(t, body, `"menu_items":{"loading":false,"error":"unavailable"}`)
	assert.Contains(t, body, `"reservations":{"loading":true}`)
	assert.Contains(t, body, `"contact_messages":{"loading":false}`)
	assert.NotContains(t, body, "10.0.3.17")
	assert.NotContains(t, body, "bayleaf_admin")
	assert.NotContains(t, body, "table store is not configured")
}

func TestHealth_DemoMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	ot := otelMocks.NewOtel()

	repo := reservationMocks.NewMockReservation(ctrl)
	repo.EXPECT().Available().Return(false)

	contactForm := contactFormService.New(repo, nil, nil, metrics.New(), &config.Config{}, ot)

	reservations := reservationMocks.NewMockReservationService(ctrl)
	reservations.EXPECT().Status().Return(status.Snapshot{})

	menuItems := menuItemMocks.NewMockMenuItemService(ctrl)
	menuItems.EXPECT().Status().Return(status.Snapshot{Error: "request timed out", Code: http.StatusGatewayTimeout})

	contactMessages := contactMessageService.New(contactMessageMocks.NewMockContactMessage(ctrl), ot)

	rec := serve(health.New(contactForm, reservations, contactMessages, menuItems))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mode":"demo"`)
	assert.Contains(t, rec.Body.String(), `"menu_items":{"loading":false,"error":"timeout"}`)
}
