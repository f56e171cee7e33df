package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=MenuItem=MockMenuItemService

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"slices"
	"sync"

	"bayleaf/config"
	"bayleaf/infras/otel"
	"bayleaf/infras/s3"
	"bayleaf/internal/domains/menuitem/model"
	"bayleaf/internal/domains/menuitem/model/dto"
	"bayleaf/internal/domains/menuitem/repository"
	"bayleaf/shared"
	"bayleaf/shared/cache"
	"bayleaf/shared/constant"
	"bayleaf/shared/failure"
	"bayleaf/shared/status"
	"bayleaf/shared/timezone"

	"github.com/rs/zerolog/log"
)

const cacheMenuItems = "menu_item:available"

type MenuItem interface {
	Fetch(ctx context.Context) ([]dto.MenuItemResponse, error)
	Items() []dto.MenuItemResponse
	Create(ctx context.Context, req dto.CreateMenuItemRequest) (dto.MenuItemResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateMenuItemRequest) (dto.MenuItemResponse, error)
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id string, file *multipart.FileHeader) (dto.MenuItemResponse, error)
	Status() status.Snapshot
}

type serviceImpl struct {
	repo    repository.MenuItem
	cfg     *config.Config
	cache   cache.RedisCache
	storage s3.S3
	otel    otel.Otel
	tracker status.Tracker

	mu    sync.RWMutex
	items []dto.MenuItemResponse
}

// New accepts a nil storage; image uploads then report the store as unavailable.
func New(repo repository.MenuItem, cfg *config.Config, cache cache.RedisCache, storage s3.S3, otel otel.Otel) MenuItem {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		storage: storage,
		otel:    otel,
		items:   []dto.MenuItemResponse{},
	}
}

func (s *serviceImpl) Status() status.Snapshot {
	return s.tracker.Snapshot()
}

// Items returns a copy of the list loaded by the last successful Fetch.
func (s *serviceImpl) Items() []dto.MenuItemResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items)
}

func (s *serviceImpl) Fetch(ctx context.Context) (res []dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MenuItem.Fetch")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	if err = s.cache.Get(ctx, cacheMenuItems, &res); err == nil {
		log.Debug().Str("cacheKey", cacheMenuItems).Msg("cache hit for menu items")
		s.store(res)

		return res, nil
	}

	models, err := s.repo.GetAvailable(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu items")

		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}

	res = dto.FromModels(models)
	s.store(res)

	if err := s.cache.Save(ctx, cacheMenuItems, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Msg("failed to save menu items to cache")
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMenuItemRequest) (res dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MenuItem.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	stored, err := s.repo.InsertReturning(ctx, req.ToModel())
	if err != nil {
		log.Error().Err(err).Msg("failed to create menu item")

		return res, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.refresh(ctx)
	res.FromModel(stored)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateMenuItemRequest) (res dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MenuItem.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	fields := shared.TransformFields(req)
	if len(fields) == 1 {
		return res, failure.BadRequestFromString("no fields to update") // nolint:wrapcheck
	}

	updated, err := s.repo.UpdateReturning(ctx, fields, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update menu item")

		return res, fmt.Errorf("failed to update menu item: %w", err)
	}

	if updated.ID == "" {
		return res, failure.NotFound("menu item not found") // nolint:wrapcheck
	}

	s.refresh(ctx)
	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MenuItem.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	item, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete menu item")

		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	if affected == 0 {
		return failure.NotFound("menu item not found") // nolint:wrapcheck
	}

	s.removeImage(ctx, item.ImageURL)
	s.refresh(ctx)

	return nil
}

// UploadImage stores the file and points image_url at it. The previous image is removed
// once the row references the new one.
func (s *serviceImpl) UploadImage(ctx context.Context, id string, file *multipart.FileHeader) (res dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MenuItem.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	done := s.tracker.Start()
	defer func() { done(err) }()

	if s.storage == nil {
		return res, failure.ServiceUnavailable("image storage is not configured") // nolint:wrapcheck
	}

	item, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	body, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("failed to open uploaded image")

		return res, failure.BadRequest(err)
	}
	defer body.Close()

	fileName := id + filepath.Ext(file.Filename)
	contentType := file.Header.Get(constant.RequestHeaderContentType)

	url, err := s.storage.Upload(ctx, model.ImageDirectory, fileName, contentType, body, file.Size)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to upload menu item image")

		return res, fmt.Errorf("failed to upload menu item image: %w", err)
	}

	updated, err := s.repo.UpdateReturning(ctx, map[string]any{
		model.FieldImageURL:     url,
		constant.FieldUpdatedAt: timezone.Now(),
	}, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to save menu item image")

		return res, fmt.Errorf("failed to save menu item image: %w", err)
	}

	if updated.ID == "" {
		return res, failure.NotFound("menu item not found") // nolint:wrapcheck
	}

	if item.ImageURL != nil && *item.ImageURL != url {
		s.removeImage(ctx, item.ImageURL)
	}

	s.refresh(ctx)
	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.MenuItem, error) {
	item, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get menu item")

		return item, fmt.Errorf("failed to get menu item: %w", err)
	}

	if item.ID == "" {
		return item, failure.NotFound("menu item not found") // nolint:wrapcheck
	}

	return item, nil
}

// refresh drops the cached list and reloads it. A failed reload leaves the mutation in place.
func (s *serviceImpl) refresh(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheMenuItems)

	if _, err := s.Fetch(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to refresh menu items after change")
	}
}

func (s *serviceImpl) removeImage(ctx context.Context, url *string) {
	if s.storage == nil || url == nil || *url == "" {
		return
	}

	if err := s.storage.Delete(ctx, *url); err != nil {
		log.Warn().Err(err).Str("url", *url).Msg("failed to remove menu item image")
	}
}

func (s *serviceImpl) store(items []dto.MenuItemResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = items
}
