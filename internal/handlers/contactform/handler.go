package contactform

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"bayleaf/config"
	"bayleaf/infras/otel"
	"bayleaf/internal/domains/contactform/form"
	"bayleaf/internal/domains/contactform/model/dto"
	"bayleaf/internal/domains/contactform/service"
	"bayleaf/shared/constant"
	"bayleaf/shared/failure"
	"bayleaf/shared/validator"
	"bayleaf/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

const fieldIdempotencyKey = "idempotency_key"

type Handler struct {
	service service.ContactForm
	config  *config.Config
	otel    otel.Otel
}

func New(service service.ContactForm, config *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		config:  config,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/contact", func(r chi.Router) {
		r.Get("/options", handler.GetOptions)
		r.Post("/reservations", handler.SubmitReservation)
		r.Post("/messages", handler.SubmitContactMessage)
	})
}

// GetOptions returns the selectable values of the reservation form.
// @Summary Reservation form options
// @Description Time slots, guest choices and defaults, labelled in the negotiated language.
// @Tags Contact
// @Produce json
// @Param lang query string false "Language (en, de)"
// @Success 200 {object} dto.OptionsResponse
// @Router /v1/contact/options [get]
func (handler *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOptions")
	defer scope.End()

	options := form.Options(handler.language(r), handler.config.App.Contact.Phone, handler.config.App.Contact.Email)

	response.WithJSON(w, http.StatusOK, options)
}

// SubmitReservation runs one reservation form submission.
// @Summary Submit the reservation form
// @Description Validates the form values, submits them and returns the resulting form view
// @Description with its banner. The same idempotency_key on a retry never creates a second reservation.
// @Tags Contact
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param lang query string false "Language (en, de)"
// @Param request body form.Values true "Form values"
// @Success 200 {object} form.View "Duplicate submission"
// @Success 201 {object} form.View "Reservation submitted"
// @Failure 400 {object} form.View
// @Failure 500 {object} form.View
// @Failure 504 {object} form.View
// @Router /v1/contact/reservations [post]
func (handler *Handler) SubmitReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitReservation")
	defer scope.End()

	values, err := decodeValues(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode form values")

		response.WithError(w, err)

		return
	}

	f := form.New(handler.service,
		form.WithLanguage(handler.language(r)),
		form.WithContactPhone(handler.config.App.Contact.Phone),
	)

	if err := f.Fill(values); err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.InternalError(err))

		return
	}

	err = f.Submit(ctx)
	view := f.View()

	switch {
	case errors.Is(err, form.ErrMissingFields), errors.Is(err, form.ErrLargeParty):
		scope.AddEvent("Reservation form rejected: " + err.Error())
		response.WithJSON(w, http.StatusBadRequest, view)
	case err != nil:
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit reservation form")

		response.WithJSON(w, failure.GetCode(err), view)
	case view.Result != nil && view.Result.Duplicate:
		scope.AddEvent("Reservation form resubmitted")
		response.WithJSON(w, http.StatusOK, view)
	default:
		scope.AddEvent("Reservation form submitted")
		response.WithJSON(w, http.StatusCreated, view)
	}
}

// SubmitContactMessage stores a message from the public contact form.
// @Summary Submit a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.SubmitContactMessageRequest true "Contact message"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Failure 504 {object} response.Error
// @Router /v1/contact/messages [post]
func (handler *Handler) SubmitContactMessage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitContactMessage")
	defer scope.End()

	req := dto.SubmitContactMessageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SubmitContactMessage(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit contact message")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact message submitted")

	response.WithJSON(w, http.StatusCreated, res)
}

func (handler *Handler) language(r *http.Request) language.Tag {
	lang := r.URL.Query().Get(constant.RequestParamLang)
	accept := r.Header.Get(constant.RequestHeaderAcceptLanguage)

	if lang == "" && accept == "" {
		lang = handler.config.App.Language
	}

	return form.Negotiate(lang, accept)
}

// decodeValues accepts a JSON body or a plain HTML form post.
func decodeValues(r *http.Request) (form.Values, error) {
	var values form.Values

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get(constant.RequestHeaderContentType))
	if mediaType != constant.ContentTypeFormURLEncoded {
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			return values, failure.BadRequestFromString("failed to decode request body") // nolint:wrapcheck
		}

		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return values, failure.BadRequest(err) // nolint:wrapcheck
	}

	values = form.Values{
		Name:           r.PostForm.Get(string(form.FieldName)),
		Email:          r.PostForm.Get(string(form.FieldEmail)),
		Phone:          r.PostForm.Get(string(form.FieldPhone)),
		Date:           r.PostForm.Get(string(form.FieldDate)),
		Time:           r.PostForm.Get(string(form.FieldTime)),
		Guests:         r.PostForm.Get(string(form.FieldGuests)),
		Message:        r.PostForm.Get(string(form.FieldMessage)),
		IdempotencyKey: r.PostForm.Get(fieldIdempotencyKey),
	}

	return values, nil
}
