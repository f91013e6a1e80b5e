package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resort/config"
	"resort/infras/otel/mocks"
	s3Mocks "resort/infras/s3/mocks"
	resortMocks "resort/internal/domains/resort/mocks"
	"resort/internal/domains/resort/model"
	"resort/internal/domains/resort/model/dto"
	"resort/internal/domains/resort/service"
	cacheMocks "resort/shared/cache/mocks"
	"resort/shared/constant"
	gDto "resort/shared/dto"
	"resort/shared/failure"
)

type memoryFile struct {
	*bytes.Reader
}

func (memoryFile) Close() error { return nil }

func newImage(name string) (*multipart.FileHeader, multipart.File) {
	header := &multipart.FileHeader{
		Filename: name,
		Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: []string{"image/png"}},
		Size:     4,
	}

	return header, memoryFile{Reader: bytes.NewReader([]byte("\x89PNG"))}
}

type fixture struct {
	repo  *resortMocks.MockResort
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Resort
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:  resortMocks.NewMockResort(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUsername, "admin")
}

func TestResortService_Create(t *testing.T) {
	tests := []struct {
		name      string
		withImage bool
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "creates resort without image",
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, resort model.Resort) error {
						assert.Equal(t, "Sunset Paradise", resort.Name)
						assert.Equal(t, "admin", resort.CreatedBy)
						assert.Empty(t, resort.ImagePath)

						return nil
					})
			},
		},
		{
			name:      "uploads image and stores public url",
			withImage: true,
			setupMock: func(f fixture) {
				f.s3.EXPECT().
					UploadFile(gomock.Any(), model.EntityName, gomock.Any(), "image/png", gomock.Any()).
					Return("https://cdn.example.com/resort/a.png", nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, resort model.Resort) error {
						assert.Equal(t, "https://cdn.example.com/resort/a.png", resort.ImagePath)

						return nil
					})
			},
		},
		{
			name:      "removes uploaded image when insert fails",
			withImage: true,
			setupMock: func(f fixture) {
				f.s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/resort/a.png", nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: "resorts_name_key"})
				f.s3.EXPECT().ObjectKeyFromURL("https://cdn.example.com/resort/a.png").Return("resort/a.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), "resort/a.png").Return(nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:      "upload error",
			withImage: true,
			setupMock: func(f fixture) {
				f.s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("bucket unavailable"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			req := dto.CreateResortRequest{Name: "Sunset Paradise", Location: "Maldives"}
			if tt.withImage {
				req.Image, req.ImageFile = newImage("photo.png")
			}

			res, err := f.svc.Create(adminContext(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, "Maldives", res.Location)
		})
	}
}

func TestResortService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "cache hit skips repository",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "resort:get:r-1", gomock.Any()).Return(nil)
			},
		},
		{
			name: "loads from repository on cache miss",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Resort{ID: "r-1", Name: "Mountain Retreat"}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Resort{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Get(context.Background(), "r-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestResortService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Resort{
		{ID: "r-1", Name: "Sunset Paradise"},
		{ID: "r-2", Name: "Mountain Retreat"},
	}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Len(t, res.Resorts, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestResortService_Update(t *testing.T) {
	tests := []struct {
		name      string
		withImage bool
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "updates fields",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Resort{ID: "r-1"}, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Beach Resort", fields[model.FieldName])
						assert.Equal(t, "admin", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:      "replaces image and removes the old one",
			withImage: true,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Resort{ID: "r-1", ImagePath: "https://cdn.example.com/resort/old.png"}, nil)
				f.s3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/resort/new.png", nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().ObjectKeyFromURL("https://cdn.example.com/resort/old.png").Return("resort/old.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), "resort/old.png").Return(nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Resort{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			req := dto.UpdateResortRequest{Name: "Beach Resort"}
			if tt.withImage {
				req.Image, req.ImageFile = newImage("new.png")
			}

			err := f.svc.Update(adminContext(), req, "r-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestResortService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "deletes resort",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Resort{ID: "r-1"}, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "resort still referenced by rooms",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Resort{ID: "r-1"}, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Resort{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(adminContext(), "r-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
