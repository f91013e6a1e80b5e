package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resort/config"
	"resort/infras/otel/mocks"
	foodMocks "resort/internal/domains/food/mocks"
	"resort/internal/domains/food/model"
	"resort/internal/domains/food/model/dto"
	"resort/internal/domains/food/service"
	cacheMocks "resort/shared/cache/mocks"
	gDto "resort/shared/dto"
	"resort/shared/failure"
)

func newService(t *testing.T) (*foodMocks.MockFoodOption, *cacheMocks.MockRedisCache, service.FoodOption) {
	ctrl := gomock.NewController(t)

	mockRepo := foodMocks.NewMockFoodOption(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return mockRepo, mockCache, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func TestFoodOptionService_Create(t *testing.T) {
	repo, _, svc := newService(t)

	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, option model.FoodOption) error {
			assert.Equal(t, "Italian", option.CuisineType)
			assert.Equal(t, "Full Board", option.MealPlan)

			return nil
		})

	res, err := svc.Create(context.Background(), dto.CreateFoodOptionRequest{
		CuisineType: "Italian",
		MealPlan:    "Full Board",
		PricePerDay: 120,
	})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.InDelta(t, 120.0, res.PricePerDay, 0)
}

func TestFoodOptionService_GetAll(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *foodMocks.MockFoodOption, cache *cacheMocks.MockRedisCache)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "served from cache",
			setupMock: func(_ *foodMocks.MockFoodOption, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "loaded from repository",
			setupMock: func(repo *foodMocks.MockFoodOption, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.FoodOption{
					{ID: "f-1", CuisineType: "Local", MealPlan: "Breakfast Only", PricePerDay: 30},
					{ID: "f-2", CuisineType: "Local", MealPlan: "Full Board", PricePerDay: 80},
				}, nil)
			},
			wantLen: 2,
		},
		{
			name: "count error",
			setupMock: func(repo *foodMocks.MockFoodOption, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockCache, svc := newService(t)
			tt.setupMock(repo, mockCache)

			res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Len(t, res.FoodOptions, tt.wantLen)
		})
	}
}

func TestFoodOptionService_Get(t *testing.T) {
	repo, mockCache, svc := newService(t)

	mockCache.EXPECT().Get(gomock.Any(), "food_option:get:f-9", gomock.Any()).Return(errors.New("cache miss"))
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.FoodOption{}, nil)

	_, err := svc.Get(context.Background(), "f-9")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestFoodOptionService_Update(t *testing.T) {
	free := 0.0

	repo, _, svc := newService(t)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, 0.0, fields[model.FieldPricePerDay])

			return nil
		})

	err := svc.Update(context.Background(), dto.UpdateFoodOptionRequest{PricePerDay: &free}, "f-1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestFoodOptionService_Delete(t *testing.T) {
	repo, _, svc := newService(t)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := svc.Delete(context.Background(), "f-1")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
