package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubLogoStorage_Upload(t *testing.T) {
	t.Run("returns deterministic URL", func(t *testing.T) {
		stub := NewStubLogoStorage()

		url, err := stub.Upload(context.Background(), "clinics/abc/logo.png", "image/png", strings.NewReader("data"), 4)
		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/clinics/abc/logo.png", url)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		stub := NewStubLogoStorage()

		_, err := stub.Upload(context.Background(), "", "image/png", strings.NewReader("data"), 4)
		assert.Error(t, err)
	})
}
