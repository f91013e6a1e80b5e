package s3_test

import (
	"testing"

	"resort/config"
	"resort/infras/otel/mocks"
	"resort/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestS3_ObjectKeyFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.APIEndpoint = "https://storage.example.com"
	cfg.External.S3.BucketName = "resort"
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"

	storage := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public domain", url: "https://cdn.example.com/resorts/paradise.png", want: "resorts/paradise.png"},
		{name: "api endpoint", url: "https://storage.example.com/resort/resorts/paradise.png", want: "resorts/paradise.png"},
		{name: "foreign url", url: "https://images.other.org/paradise.png", want: ""},
		{name: "prefix only", url: "https://cdn.example.com/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.ObjectKeyFromURL(tt.url))
		})
	}
}
