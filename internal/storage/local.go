// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is returned by Open when the key does not exist.
var ErrNotFound = errors.New("storage: file not found")

// Local serves files from a directory tree. Keys are slash-separated paths
// relative to the root; keys escaping the root are treated as missing.
type Local struct {
	fs      afero.Fs
	baseURL string
}

// NewLocal creates a backend rooted at dir on the OS filesystem. baseURL
// is the URL prefix the files are served under, e.g. "/files".
func NewLocal(dir, baseURL string) *Local {
	return NewLocalFs(afero.NewBasePathFs(afero.NewOsFs(), dir), baseURL)
}

// NewLocalFs creates a backend over an arbitrary afero filesystem.
func NewLocalFs(fsys afero.Fs, baseURL string) *Local {
	return &Local{fs: fsys, baseURL: strings.TrimRight(baseURL, "/")}
}

// Exists reports whether key is a regular file.
func (l *Local) Exists(_ context.Context, key string) (bool, error) {
	name, ok := clean(key)
	if !ok {
		return false, nil
	}
	info, err := l.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", key, err)
	}
	return info.Mode().IsRegular(), nil
}

// Open opens key for reading. The caller closes the reader.
func (l *Local) Open(_ context.Context, key string) (io.ReadCloser, error) {
	name, ok := clean(key)
	if !ok {
		return nil, ErrNotFound
	}
	f, err := l.fs.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		f.Close()
		return nil, ErrNotFound
	}
	return f, nil
}

// FileURL returns the public URL of key.
func (l *Local) FileURL(key string) string {
	return l.baseURL + "/" + strings.TrimLeft(key, "/")
}

func clean(key string) (string, bool) {
	if key == "" || slices.Contains(strings.Split(key, "/"), "..") {
		return "", false
	}
	name := path.Clean("/" + key)
	return name, name != "/"
}
