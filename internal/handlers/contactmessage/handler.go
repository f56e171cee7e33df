package contactmessage

import (
	"net/http"

	"bayleaf/infras/otel"
	"bayleaf/internal/domains/contactmessage/model"
	"bayleaf/internal/domains/contactmessage/model/dto"
	"bayleaf/internal/domains/contactmessage/service"
	"bayleaf/shared/constant"
	gDto "bayleaf/shared/dto"
	"bayleaf/shared/validator"
	"bayleaf/transport/http/middleware"
	"bayleaf/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.ContactMessage
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.ContactMessage, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contact-messages", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Staff)

		routerGroup.Post("/", handler.CreateContactMessage)
		routerGroup.Get("/", handler.GetContactMessages)
		routerGroup.Patch("/{id}/status", handler.UpdateContactMessageStatus)
	})
}

// CreateContactMessage stores a message on behalf of a guest.
// @Summary Create a contact message
// @Tags ContactMessage
// @Accept json
// @Produce json
// @Param request body dto.CreateContactMessageRequest true "Create Contact Message Request"
// @Success 201 {object} dto.ContactMessageResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/contact-messages [post]
// @Security BearerAuth
// @Security ApiKeyAuth
func (handler *Handler) CreateContactMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContactMessage")
	defer scope.End()

	req := dto.CreateContactMessageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	message, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact message")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, message)
}

// GetContactMessages lists messages, newest first.
// @Summary List contact messages
// @Tags ContactMessage
// @Produce json
// @Param status query string false "Filter by status (unread, read, replied)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.GetContactMessagesResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/contact-messages [get]
// @Security BearerAuth
// @Security ApiKeyAuth
func (handler *Handler) GetContactMessages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactMessages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	messages, err := handler.service.GetAll(ctx, queryParams, r.URL.Query().Get(model.FieldStatus))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact messages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact messages retrieved successfully")

	response.WithJSON(w, http.StatusOK, messages)
}

// UpdateContactMessageStatus marks a message read or replied.
// @Summary Update contact message status
// @Tags ContactMessage
// @Accept json
// @Produce json
// @Param id path string true "Contact message ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} dto.ContactMessageResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/contact-messages/{id}/status [patch]
// @Security BearerAuth
// @Security ApiKeyAuth
func (handler *Handler) UpdateContactMessageStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContactMessageStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(id, "contact message"); err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	message, err := handler.service.UpdateStatus(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update contact message status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, message)
}
