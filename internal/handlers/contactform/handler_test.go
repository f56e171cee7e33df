package contactform_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bayleaf/config"
	otelMocks "bayleaf/infras/otel/mocks"
	"bayleaf/internal/domains/contactform/form"
	"bayleaf/internal/domains/contactform/mocks"
	"bayleaf/internal/domains/contactform/model/dto"
	"bayleaf/internal/handlers/contactform"
	"bayleaf/shared/constant"
	"bayleaf/shared/failure"
)

const janeDoe = `{"name":"Jane Doe","email":"jane@example.com","date":"2099-01-01","time":"19:00","guests":"2","message":""}`

func newRouter(t *testing.T) (*chi.Mux, *mocks.MockContactForm) {
	t.Helper()

	svc := mocks.NewMockContactForm(gomock.NewController(t))

	cfg := &config.Config{}
	cfg.App.Language = "en"
	cfg.App.Contact.Phone = "+49 179 423 2002"
	cfg.App.Contact.Email = "info@bay-leaf.eu"

	handler := contactform.New(svc, cfg, otelMocks.NewOtel())

	r := chi.NewRouter()
	r.Route("/v1", handler.Router)

	return r, svc
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body.Data
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestSubmitReservation_Success(t *testing.T) {
	r, svc := newRouter(t)

	svc.EXPECT().SubmitReservation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, req dto.SubmitReservationRequest) (dto.SubmissionResponse, error) {
			assert.Equal(t, "Jane Doe", req.Name)
			assert.Equal(t, 2, req.Guests)
			assert.Nil(t, req.Message)
			assert.NotEmpty(t, req.IdempotencyKey)

			return dto.SubmissionResponse{ID: "r-1"}, nil
		})

	rec := postJSON(r, "/v1/contact/reservations", janeDoe)
	require.Equal(t, http.StatusCreated, rec.Code)

	view := decode[form.View](t, rec)
	assert.Equal(t, form.StateSuccess, view.State)
	assert.Equal(t, "Your reservation has been submitted successfully! We will contact you soon to confirm.", view.Banner.Message)
	assert.Equal(t, form.DefaultValues(), view.Values)
	require.NotNil(t, view.Result)
	assert.Equal(t, "r-1", view.Result.ID)
}

func TestSubmitReservation_Duplicate(t *testing.T) {
	r, svc := newRouter(t)

	svc.EXPECT().SubmitReservation(gomock.Any(), gomock.Any()).Return(dto.SubmissionResponse{ID: "r-1", Duplicate: true}, nil)

	rec := postJSON(r, "/v1/contact/reservations", janeDoe)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[form.View](t, rec).Result.Duplicate)
}

func TestSubmitReservation_URLEncodedMissingDate(t *testing.T) {
	r, _ := newRouter(t)

	body := url.Values{
		"name":   {"Jane Doe"},
		"email":  {"jane@example.com"},
		"time":   {"19:00"},
		"guests": {"2"},
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/contact/reservations", strings.NewReader(body.Encode()))
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeFormURLEncoded)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	view := decode[form.View](t, rec)
	assert.Equal(t, form.StateError, view.State)
	assert.Equal(t, "Please fill in all required fields.", view.Banner.Message)
	assert.Equal(t, "Jane Doe", view.Values.Name)
}

func TestSubmitReservation_LargeParty(t *testing.T) {
	r, _ := newRouter(t)

	body := strings.Replace(janeDoe, `"guests":"2"`, `"guests":"9+"`, 1)

	rec := postJSON(r, "/v1/contact/reservations", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	view := decode[form.View](t, rec)
	assert.Equal(t, "For parties of 9 or more guests, please call us at +49 179 423 2002.", view.Banner.Message)
}

func TestSubmitReservation_Failures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantBanner string
	}{
		{
			name:       "store failure",
			err:        failure.InternalError(assert.AnError),
			wantCode:   http.StatusInternalServerError,
			wantBanner: "There was an error submitting your reservation. Please try again or call us directly.",
		},
		{
			name:       "timeout",
			err:        failure.Timeout("reservation store did not answer in time"),
			wantCode:   http.StatusGatewayTimeout,
			wantBanner: "Your reservation request timed out. Please try again or call us directly.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, svc := newRouter(t)

			svc.EXPECT().SubmitReservation(gomock.Any(), gomock.Any()).Return(dto.SubmissionResponse{}, tt.err)

			rec := postJSON(r, "/v1/contact/reservations", janeDoe)
			require.Equal(t, tt.wantCode, rec.Code)

			view := decode[form.View](t, rec)
			assert.Equal(t, form.StateError, view.State)
			assert.Equal(t, tt.wantBanner, view.Banner.Message)
			assert.Equal(t, "Jane Doe", view.Values.Name)
			assert.NotEmpty(t, view.Values.IdempotencyKey)
		})
	}
}

func TestSubmitReservation_German(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/contact/reservations", strings.NewReader(`{"name":"Jane Doe"}`))
	req.Header.Set(constant.RequestHeaderAcceptLanguage, "de-DE,de;q=0.9")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bitte füllen Sie alle Pflichtfelder aus.", decode[form.View](t, rec).Banner.Message)
}

func TestSubmitReservation_MalformedBody(t *testing.T) {
	r, _ := newRouter(t)

	rec := postJSON(r, "/v1/contact/reservations", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOptions(t *testing.T) {
	r, _ := newRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/contact/options?lang=de", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	options := decode[dto.OptionsResponse](t, rec)
	assert.Equal(t, "de", options.Language)
	assert.Contains(t, options.TimeSlots, dto.TimeSlotOption{Value: "19:00", Label: "19:00 Uhr"})
	assert.Equal(t, "2", options.Defaults["guests"])
	assert.Equal(t, "info@bay-leaf.eu", options.ContactEmail)
}

func TestSubmitContactMessage(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r, svc := newRouter(t)

		svc.EXPECT().SubmitContactMessage(gomock.Any(), gomock.Any()).Return(dto.SubmissionResponse{ID: "m-1"}, nil)

		rec := postJSON(r, "/v1/contact/messages", `{"name":"Jane Doe","email":"jane@example.com","message":"Do you cater?"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "m-1", decode[dto.SubmissionResponse](t, rec).ID)
	})

	t.Run("missing message", func(t *testing.T) {
		r, _ := newRouter(t)

		rec := postJSON(r, "/v1/contact/messages", `{"name":"Jane Doe","email":"jane@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
