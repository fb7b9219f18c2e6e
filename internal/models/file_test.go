package models

import "testing"

// TestFileNameAndExtension verifies path helpers on registry entries.
func TestFileNameAndExtension(t *testing.T) {
	tests := []struct {
		path    string
		name    string
		ext     string
		isImage bool
	}{
		{path: "files/portfolio/Cover.JPG", name: "Cover.JPG", ext: "jpg", isImage: true},
		{path: "files/a.webp", name: "a.webp", ext: "webp", isImage: true},
		{path: "files/doc.pdf", name: "doc.pdf", ext: "pdf", isImage: false},
		{path: "files/README", name: "README", ext: "", isImage: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f := &File{Path: tt.path}
			if got := f.Name(); got != tt.name {
				t.Errorf("Name() = %q, want %q", got, tt.name)
			}
			if got := f.Extension(); got != tt.ext {
				t.Errorf("Extension() = %q, want %q", got, tt.ext)
			}
			if got := f.IsImage(); got != tt.isImage {
				t.Errorf("IsImage() = %v, want %v", got, tt.isImage)
			}
		})
	}
}
