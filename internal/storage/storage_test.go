package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemLocal(t *testing.T) *Local {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/files/portfolio/logo.jpg", []byte("jpeg"), 0o644))
	require.NoError(t, mem.MkdirAll("/files/empty", 0o755))
	return NewLocalFs(mem, "/static/")
}

func TestLocalExists(t *testing.T) {
	l := newMemLocal(t)

	tests := []struct {
		key  string
		want bool
	}{
		{key: "files/portfolio/logo.jpg", want: true},
		{key: "/files/portfolio/logo.jpg", want: true},
		{key: "files/portfolio/missing.jpg", want: false},
		{key: "files/empty", want: false},
		{key: "files/../files/portfolio/logo.jpg", want: false},
		{key: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := l.Exists(context.Background(), tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalOpen(t *testing.T) {
	l := newMemLocal(t)

	rc, err := l.Open(context.Background(), "files/portfolio/logo.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "jpeg", string(data))

	_, err = l.Open(context.Background(), "files/nope.jpg")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = l.Open(context.Background(), "files/empty")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalFileURL(t *testing.T) {
	l := newMemLocal(t)
	assert.Equal(t, "/static/files/a.jpg", l.FileURL("files/a.jpg"))
	assert.Equal(t, "/static/files/a.jpg", l.FileURL("/files/a.jpg"))
}

func TestNewS3Disabled(t *testing.T) {
	c, err := NewS3("", "eu", "", "", "media", "")
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewS3RequiresBucket(t *testing.T) {
	_, err := NewS3("https://s3.test", "eu", "key", "secret", "", "")
	assert.Error(t, err)
}

func TestS3FileURL(t *testing.T) {
	tests := []struct {
		name      string
		publicURL string
		wantURL   string
	}{
		{name: "path style", wantURL: "https://s3.test/media/files/a.jpg"},
		{name: "cdn", publicURL: "https://cdn.test/", wantURL: "https://cdn.test/files/a.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewS3("https://s3.test/", "eu", "key", "secret", "media", tt.publicURL)
			require.NoError(t, err)
			require.NotNil(t, c)

			assert.Equal(t, tt.wantURL, c.FileURL("files/a.jpg"))
		})
	}
}

var (
	_ Backend = (*Local)(nil)
	_ Backend = (*S3)(nil)
)
