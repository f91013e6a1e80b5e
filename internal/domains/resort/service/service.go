package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"resort/config"
	"resort/infras/otel"
	"resort/infras/s3"
	"resort/internal/domains/resort/model"
	"resort/internal/domains/resort/model/dto"
	"resort/internal/domains/resort/repository"
	"resort/shared"
	"resort/shared/cache"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetResort    = "resort:get"
	cacheGetAllResort = "resort:gets"
	cacheCountResort  = "resort:count"

	// rooms embed the resort name, so their caches go stale with it.
	cacheRoomPrefix = "room:"
)

type Resort interface {
	Create(ctx context.Context, req dto.CreateResortRequest) (dto.ResortResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetResortsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ResortResponse, error)
	Update(ctx context.Context, req dto.UpdateResortRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Resort
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Resort, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Resort {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateResortRequest) (res dto.ResortResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	imageURL, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return res, err
	}

	resort := req.ToModel(user, imageURL)

	if err = s.repo.Insert(ctx, resort); err != nil {
		log.Error().Err(err).Msg("failed to create resort")

		s.removeImage(ctx, imageURL)

		return res, failure.FromDatabase(err) // nolint:wrapcheck
	}

	res.FromModel(resort)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllResort)
		shared.InvalidateCaches(c, s.cache, cacheCountResort)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetResortsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllResort, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for resorts")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count resorts")

		return res, fmt.Errorf("failed to count resorts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get resorts")

		return res, fmt.Errorf("failed to get resorts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save resorts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountResort, req, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count resorts")

		return res, fmt.Errorf("failed to count resorts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save resort count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ResortResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetResort, id)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for resort")

		return res, nil
	}

	resort, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get resort")

		return res, fmt.Errorf("failed to get resort: %w", err)
	}

	if resort.ID == constant.Empty {
		return res, failure.NotFound("resort not found") // nolint:wrapcheck
	}

	res.FromModel(resort)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save resort to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateResortRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check resort existence")

		return fmt.Errorf("failed to get resort: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("resort not found") // nolint:wrapcheck
	}

	imageURL, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImagePath] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update resort")

		s.removeImage(ctx, imageURL)

		return failure.FromDatabase(err) // nolint:wrapcheck
	}

	if imageURL != constant.Empty {
		s.removeImage(ctx, current.ImagePath)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetResort, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete resort cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllResort)
		shared.InvalidateCaches(c, s.cache, cacheRoomPrefix)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if resort exists")

		return fmt.Errorf("failed to get resort: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("resort not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete resort")

		return failure.FromDatabase(err) // nolint:wrapcheck
	}

	s.removeImage(ctx, current.ImagePath)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetResort, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete resort from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllResort)
		shared.InvalidateCaches(c, s.cache, cacheCountResort)
	}()

	return nil
}

// uploadImage stores the image under a random name keeping its extension.
// It returns an empty URL when no image was sent.
func (s *serviceImpl) uploadImage(ctx context.Context, header *multipart.FileHeader, file multipart.File) (string, error) {
	if header == nil || file == nil {
		return constant.Empty, nil
	}

	fileName := uuid.NewString() + filepath.Ext(header.Filename)
	contentType := header.Header.Get(constant.RequestHeaderContentType)

	url, err := s.s3.UploadFile(ctx, model.EntityName, fileName, contentType, file)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload resort image")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) removeImage(ctx context.Context, url string) {
	if url == constant.Empty {
		return
	}

	objectKey := s.s3.ObjectKeyFromURL(url)
	if objectKey == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Warn().Err(err).Str("key", objectKey).Msg("failed to remove resort image")
	}
}
