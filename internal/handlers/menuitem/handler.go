package menuitem

import (
	"net/http"

	"bayleaf/infras/otel"
	"bayleaf/internal/domains/menuitem/model/dto"
	"bayleaf/internal/domains/menuitem/service"
	"bayleaf/shared/constant"
	"bayleaf/shared/failure"
	"bayleaf/shared/validator"
	"bayleaf/transport/http/middleware"
	"bayleaf/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.MenuItem
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.MenuItem, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/menu-items", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMenuItems)

		routerGroup.Group(func(staff chi.Router) {
			staff.Use(handler.middleware.Staff)

			staff.Post("/", handler.CreateMenuItem)
			staff.Patch("/{id}", handler.UpdateMenuItem)
			staff.Delete("/{id}", handler.DeleteMenuItem)
			staff.Post("/{id}/image", handler.UploadMenuItemImage)
		})
	})
}

// GetMenuItems returns the available menu, grouped by category.
// @Summary List available menu items
// @Tags MenuItem
// @Produce json
// @Success 200 {array} dto.MenuItemResponse
// @Failure 500 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/menu-items [get]
func (handler *Handler) GetMenuItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenuItems")
	defer scope.End()

	items, err := handler.service.Fetch(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get menu items")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, items)
}

// CreateMenuItem adds a dish to the menu.
// @Summary Create a menu item
// @Tags MenuItem
// @Accept json
// @Produce json
// @Param request body dto.CreateMenuItemRequest true "Create Menu Item Request"
// @Success 201 {object} dto.MenuItemChangeResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu-items [post]
// @Security BearerAuth
// @Security ApiKeyAuth
func (handler *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMenuItem")
	defer scope.End()

	req := dto.CreateMenuItemRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	item, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create menu item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	scope.AddEvent("Menu item created by " + user)

	response.WithJSON(w, http.StatusCreated, handler.changed(&item))
}

// UpdateMenuItem changes the given fields of a menu item.
// @Summary Update a menu item
// @Tags MenuItem
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body dto.UpdateMenuItemRequest true "Update Menu Item Request"
// @Success 200 {object} dto.MenuItemChangeResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu-items/{id} [patch]
// @Security BearerAuth
// @Security ApiKeyAuth
func (handler *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMenuItem")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(id, "menu item"); err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateMenuItemRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	item, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update menu item")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, handler.changed(&item))
}

// DeleteMenuItem removes a menu item and its image.
// @Summary Delete a menu item
// @Tags MenuItem
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} dto.MenuItemChangeResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/menu-items/{id} [delete]
// @Security BearerAuth
// @Security ApiKeyAuth
func (handler *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMenuItem")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(id, "menu item"); err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete menu item")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	scope.AddEvent("Menu item " + id + " deleted by " + user)

	response.WithJSON(w, http.StatusOK, handler.changed(nil))
}

// UploadMenuItemImage stores a photo for a menu item.
// @Summary Upload a menu item image
// @Description JPEG, PNG or WebP up to 5 MB. Replaces the previous image.
// @Tags MenuItem
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Menu item ID"
// @Param file formData file true "Image file to upload"
// @Success 200 {object} dto.MenuItemChangeResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/menu-items/{id}/image [post]
// @Security BearerAuth
// @Security ApiKeyAuth
func (handler *Handler) UploadMenuItemImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadMenuItemImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if err := validator.ValidateID(id, "menu item"); err != nil {
		response.WithError(w, err)

		return
	}

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer r.MultipartForm.RemoveAll() // nolint:errcheck

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	_ = file.Close()

	req := dto.UploadImageRequest{File: fileHeader}
	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate image")

		response.WithError(w, err)

		return
	}

	item, err := handler.service.UploadImage(ctx, id, req.File)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to upload menu item image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Menu item image uploaded")

	response.WithJSON(w, http.StatusOK, handler.changed(&item))
}

// changed pairs a mutation result with the menu the service reloaded after it.
func (handler *Handler) changed(item *dto.MenuItemResponse) dto.MenuItemChangeResponse {
	return dto.MenuItemChangeResponse{
		Item:  item,
		Items: handler.service.Items(),
	}
}
