package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"bayleaf/config"
	otelMocks "bayleaf/infras/otel/mocks"
	s3Mocks "bayleaf/infras/s3/mocks"
	"bayleaf/internal/domains/menuitem/mocks"
	"bayleaf/internal/domains/menuitem/model"
	"bayleaf/internal/domains/menuitem/model/dto"
	"bayleaf/internal/domains/menuitem/service"
	"bayleaf/shared/cache"
	cacheMocks "bayleaf/shared/cache/mocks"
	"bayleaf/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc     service.MenuItem
	repo    *mocks.MockMenuItem
	cache   *cacheMocks.MockRedisCache
	storage *s3Mocks.MockS3
}

func setup(t *testing.T, withStorage bool) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  mocks.NewMockMenuItem(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	if withStorage {
		f.storage = s3Mocks.NewMockS3(ctrl)
		f.svc = service.New(f.repo, cfg, f.cache, f.storage, otelMocks.NewOtel())
	} else {
		f.svc = service.New(f.repo, cfg, f.cache, nil, otelMocks.NewOtel())
	}

	return f
}

// expectReload covers the cache drop and the reload that follow every mutation.
func (f fixture) expectReload(items ...model.MenuItem) {
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().GetAvailable(gomock.Any()).Return(items, nil)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(nil)
}

func TestFetch_CacheMiss(t *testing.T) {
	f := setup(t, false)

	items := []model.MenuItem{
		{ID: "1", Category: "curries", IsAvailable: true},
		{ID: "2", Category: "desserts", IsAvailable: true},
	}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().GetAvailable(gomock.Any()).Return(items, nil)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(errors.New("redis down"))

	res, err := f.svc.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "curries", res[0].Category)
	assert.Equal(t, res, f.svc.Items())
	assert.False(t, f.svc.Status().Loading)
}

func TestFetch_CacheHit(t *testing.T) {
	f := setup(t, false)

	cached := []dto.MenuItemResponse{{ID: "1", Category: "curries", IsAvailable: true}}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, value any) error {
			*(value.(*[]dto.MenuItemResponse)) = cached

			return nil
		})

	res, err := f.svc.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, cached, res)
	assert.Equal(t, cached, f.svc.Items())
}

func TestFetch_StoreError(t *testing.T) {
	f := setup(t, false)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().GetAvailable(gomock.Any()).Return(nil, failure.StoreUnavailableError)

	_, err := f.svc.Fetch(context.Background())

	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
	assert.Empty(t, f.svc.Items())
	assert.NotEmpty(t, f.svc.Status().Error)
}

func TestCreate_RefetchesList(t *testing.T) {
	f := setup(t, false)

	f.repo.EXPECT().InsertReturning(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, item model.MenuItem) (model.MenuItem, error) {
			assert.True(t, item.IsAvailable)

			return item, nil
		})
	f.expectReload(model.MenuItem{ID: "new", Name: "Lamb Rogan Josh", Category: "curries", IsAvailable: true})

	res, err := f.svc.Create(context.Background(), dto.CreateMenuItemRequest{Name: "Lamb Rogan Josh", Category: "curries", Price: 18.9})

	require.NoError(t, err)
	assert.Equal(t, "Lamb Rogan Josh", res.Name)
	require.Len(t, f.svc.Items(), 1)
	assert.Equal(t, "new", f.svc.Items()[0].ID)
}

func TestUpdate(t *testing.T) {
	f := setup(t, false)

	price := 9.5
	f.repo.EXPECT().UpdateReturning(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, mod map[string]any, _ any) (model.MenuItem, error) {
			assert.InDelta(t, 9.5, mod["price"], 0.001)
			assert.Contains(t, mod, "updated_at")
			assert.NotContains(t, mod, "name")

			return model.MenuItem{ID: "1", Price: 9.5}, nil
		})
	f.expectReload()

	res, err := f.svc.Update(context.Background(), "1", dto.UpdateMenuItemRequest{Price: &price})

	require.NoError(t, err)
	assert.InDelta(t, 9.5, res.Price, 0.001)
}

func TestUpdate_NoFields(t *testing.T) {
	f := setup(t, false)

	_, err := f.svc.Update(context.Background(), "1", dto.UpdateMenuItemRequest{})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestUpdate_NotFound(t *testing.T) {
	f := setup(t, false)

	name := "Dal"
	f.repo.EXPECT().UpdateReturning(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.MenuItem{}, nil)

	_, err := f.svc.Update(context.Background(), "missing", dto.UpdateMenuItemRequest{Name: &name})

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestDelete_RemovesImage(t *testing.T) {
	f := setup(t, true)

	url := "https://cdn.example.com/menu-items/1.png"
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{ID: "1", ImageURL: &url}, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	f.storage.EXPECT().Delete(gomock.Any(), url).Return(nil)
	f.expectReload()

	require.NoError(t, f.svc.Delete(context.Background(), "1"))
}

func TestDelete_NotFound(t *testing.T) {
	f := setup(t, false)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{}, nil)

	err := f.svc.Delete(context.Background(), "missing")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestUploadImage_StorageNotConfigured(t *testing.T) {
	f := setup(t, false)

	_, err := f.svc.UploadImage(context.Background(), "1", imageFile(t))

	assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))
}

func TestUploadImage(t *testing.T) {
	f := setup(t, true)

	url := "https://cdn.example.com/menu-items/1.png"

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MenuItem{ID: "1"}, nil)
	f.storage.EXPECT().Upload(gomock.Any(), model.ImageDirectory, "1.png", "image/png", gomock.Any(), int64(9)).DoAndReturn(
		func(_ context.Context, _, _, _ string, body io.Reader, _ int64) (string, error) {
			data, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.Equal(t, "png-bytes", string(data))

			return url, nil
		})
	f.repo.EXPECT().UpdateReturning(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, mod map[string]any, _ any) (model.MenuItem, error) {
			assert.Equal(t, url, mod[model.FieldImageURL])

			return model.MenuItem{ID: "1", ImageURL: &url}, nil
		})
	f.expectReload()

	res, err := f.svc.UploadImage(context.Background(), "1", imageFile(t))

	require.NoError(t, err)
	require.NotNil(t, res.ImageURL)
	assert.Equal(t, url, *res.ImageURL)
}

func imageFile(t *testing.T) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="naan.png"`)
	header.Set("Content-Type", "image/png")

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)

	return form.File["file"][0]
}
