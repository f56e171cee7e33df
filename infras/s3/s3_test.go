package s3_test

import (
	"testing"

	"bayleaf/config"
	"bayleaf/infras/otel/mocks"
	"bayleaf/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestObjectURLAndKey(t *testing.T) {
	url := s3.ObjectURL("https://cdn.bay-leaf.eu/", "menu-items/abc.png")

	assert.Equal(t, "https://cdn.bay-leaf.eu/menu-items/abc.png", url)
	assert.Equal(t, "menu-items/abc.png", s3.ObjectKey("https://cdn.bay-leaf.eu", url))
	assert.Empty(t, s3.ObjectKey("https://cdn.bay-leaf.eu", "https://example.com/menu-items/abc.png"))
	assert.Empty(t, s3.ObjectKey("", url))
}

func TestNew_NotConfigured(t *testing.T) {
	assert.Nil(t, s3.New(&config.Config{}, mocks.NewOtel()))
}
