package health

import (
	"net/http"

	contactFormService "bayleaf/internal/domains/contactform/service"
	contactMessageService "bayleaf/internal/domains/contactmessage/service"
	menuItemService "bayleaf/internal/domains/menuitem/service"
	reservationService "bayleaf/internal/domains/reservation/service"
	"bayleaf/shared/status"
	"bayleaf/transport/http/response"

	"github.com/go-chi/chi/v5"
)

const (
	modeDemo      = "demo"
	modeConnected = "connected"
)

const (
	errorInvalidInput = "invalid_input"
	errorUnauthorized = "unauthorized"
	errorNotFound     = "not_found"
	errorConflict     = "conflict"
	errorUnavailable  = "unavailable"
	errorTimeout      = "timeout"
	errorInternal     = "internal"
)

// ServiceStatus never carries the raw error text, which may name hosts or database users.
type ServiceStatus struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

type Response struct {
	Status   string                   `json:"status"`
	Mode     string                   `json:"mode"`
	Services map[string]ServiceStatus `json:"services"`
}

type Handler struct {
	contactForm     contactFormService.ContactForm
	reservations    reservationService.Reservation
	contactMessages contactMessageService.ContactMessage
	menuItems       menuItemService.MenuItem
}

func New(
	contactForm contactFormService.ContactForm,
	reservations reservationService.Reservation,
	contactMessages contactMessageService.ContactMessage,
	menuItems menuItemService.MenuItem,
) Handler {
	return Handler{
		contactForm:     contactForm,
		reservations:    reservations,
		contactMessages: contactMessages,
		menuItems:       menuItems,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/healthz", handler.Health)
}

// Health reports the submission mode, and per service the loading flag and the kind of the last error.
// @Summary Health check
// @Tags Ops
// @Produce json
// @Success 200 {object} Response
// @Router /healthz [get]
func (handler *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	mode := modeConnected
	if handler.contactForm.Demo() {
		mode = modeDemo
	}

	response.WithJSON(w, http.StatusOK, Response{
		Status: "ok",
		Mode:   mode,
		Services: map[string]ServiceStatus{
			"contact_form":     serviceStatus(handler.contactForm.Status()),
			"reservations":     serviceStatus(handler.reservations.Status()),
			"contact_messages": serviceStatus(handler.contactMessages.Status()),
			"menu_items":       serviceStatus(handler.menuItems.Status()),
		},
	})
}

func serviceStatus(snapshot status.Snapshot) ServiceStatus {
	res := ServiceStatus{Loading: snapshot.Loading}
	if snapshot.Error == "" {
		return res
	}

	switch snapshot.Code {
	case http.StatusBadRequest:
		res.Error = errorInvalidInput
	case http.StatusUnauthorized, http.StatusForbidden:
		res.Error = errorUnauthorized
	case http.StatusNotFound:
		res.Error = errorNotFound
	case http.StatusConflict:
		res.Error = errorConflict
	case http.StatusServiceUnavailable:
		res.Error = errorUnavailable
	case http.StatusGatewayTimeout:
		res.Error = errorTimeout
	default:
		res.Error = errorInternal
	}

	return res
}
