package menuitem_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bayleaf/config"
	jwtMocks "bayleaf/infras/jwt/mocks"
	otelMocks "bayleaf/infras/otel/mocks"
	"bayleaf/internal/domains/menuitem/mocks"
	"bayleaf/internal/domains/menuitem/model/dto"
	"bayleaf/internal/handlers/menuitem"
	"bayleaf/shared/constant"
	"bayleaf/shared/failure"
	"bayleaf/transport/http/middleware"
)

const (
	apiKey = "internal-key"
	itemID = "5b0e8f0c-4f3c-4a39-9d57-2f6f8f0d7a11"
)

func newRouter(t *testing.T) (*chi.Mux, *mocks.MockMenuItemService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMenuItemService(ctrl)

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	auth := middleware.NewAuthMiddleware(jwtMocks.NewMockJWT(ctrl), otelMocks.NewOtel(), cfg)
	handler := menuitem.New(svc, auth, otelMocks.NewOtel())

	r := chi.NewRouter()
	r.Route("/v1", handler.Router)

	return r, svc
}

func upload(t *testing.T, r http.Handler, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="naan.png"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write([]byte("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/menu-items/"+itemID+"/image", &buf)
	req.Header.Set(constant.RequestHeaderContentType, writer.FormDataContentType())
	req.Header.Set(constant.RequestHeaderAPIKey, apiKey)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestMenuItemHandler_GetIsPublic(t *testing.T) {
	r, svc := newRouter(t)
	svc.EXPECT().Fetch(gomock.Any()).Return([]dto.MenuItemResponse{{ID: "m-1", Category: "curries"}}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/menu-items", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"curries"`)
}

func TestMenuItemHandler_GetWithoutStore(t *testing.T) {
	r, svc := newRouter(t)
	svc.EXPECT().Fetch(gomock.Any()).Return(nil, failure.StoreUnavailableError)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/menu-items", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMenuItemHandler_MutationsRequireStaff(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/menu-items", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMenuItemHandler_Delete(t *testing.T) {
	r, svc := newRouter(t)
	gomock.InOrder(
		svc.EXPECT().Delete(gomock.Any(), itemID).Return(nil),
		svc.EXPECT().Items().Return([]dto.MenuItemResponse{{ID: "m-2", Name: "Dal Makhani"}}),
	)

	req := httptest.NewRequest(http.MethodDelete, "/v1/menu-items/"+itemID, nil)
	req.Header.Set(constant.RequestHeaderAPIKey, apiKey)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[{"id":"m-2"`)
	assert.NotContains(t, rec.Body.String(), `"item":`)
}

func TestMenuItemHandler_UpdateReturnsReloadedMenu(t *testing.T) {
	r, svc := newRouter(t)
	price := 12.5
	gomock.InOrder(
		svc.EXPECT().Update(gomock.Any(), itemID, gomock.Any()).Return(dto.MenuItemResponse{ID: itemID, Price: price}, nil),
		svc.EXPECT().Items().Return([]dto.MenuItemResponse{{ID: itemID, Price: price}}),
	)

	req := httptest.NewRequest(http.MethodPatch, "/v1/menu-items/"+itemID, strings.NewReader(`{"price":12.5}`))
	req.Header.Set(constant.RequestHeaderAPIKey, apiKey)
	req.Header.Set(constant.RequestHeaderContentType, "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"item":{"id":"`+itemID+`"`)
	assert.Contains(t, rec.Body.String(), `"items":[{"id":"`+itemID+`"`)
}

func TestMenuItemHandler_RejectsMalformedID(t *testing.T) {
	r, _ := newRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPatch, "/v1/menu-items/1%20OR%201=1"},
		{http.MethodDelete, "/v1/menu-items/m-1"},
		{http.MethodPost, "/v1/menu-items/m-1/image"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{"price":1}`))
		req.Header.Set(constant.RequestHeaderAPIKey, apiKey)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, tc.method+" "+tc.path)
		assert.Contains(t, rec.Body.String(), "menu item not found")
	}
}

func TestMenuItemHandler_UploadImage(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		r, svc := newRouter(t)
		svc.EXPECT().UploadImage(gomock.Any(), itemID, gomock.Any()).DoAndReturn(
			func(_ any, _ string, file *multipart.FileHeader) (dto.MenuItemResponse, error) {
				assert.Equal(t, "naan.png", file.Filename)

				url := "https://cdn.bay-leaf.eu/menu-items/" + itemID + ".png"

				return dto.MenuItemResponse{ID: itemID, ImageURL: &url}, nil
			})
		svc.EXPECT().Items().Return(nil)

		rec := upload(t, r, "image/png")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), itemID+".png")
		assert.Contains(t, rec.Body.String(), `"items":null`)
	})

	t.Run("not an image", func(t *testing.T) {
		r, _ := newRouter(t)

		assert.Equal(t, http.StatusBadRequest, upload(t, r, "text/plain").Code)
	})
}
