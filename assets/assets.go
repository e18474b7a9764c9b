// Package assets resolves image files referenced by a deck.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound reports that a referenced image file does not exist.
var ErrNotFound = errors.New("asset not found")

// Info describes a resolved image.
type Info struct {
	Path   string // absolute or base-relative path usable with os.Open
	Width  int    // pixels
	Height int    // pixels
}

// Aspect returns height/width, or 0 when the size is unknown.
func (i Info) Aspect() float64 {
	if i.Width <= 0 || i.Height <= 0 {
		return 0
	}
	return float64(i.Height) / float64(i.Width)
}

// Resolver looks up images relative to BaseDir.
type Resolver struct {
	BaseDir string
}

// NewResolver returns a resolver rooted at baseDir. An empty baseDir means the
// working directory.
func NewResolver(baseDir string) *Resolver {
	return &Resolver{BaseDir: baseDir}
}

// Resolve joins name onto the base directory unless it is absolute.
func (r *Resolver) Resolve(name string) string {
	if filepath.IsAbs(name) || r == nil || r.BaseDir == "" {
		return name
	}
	return filepath.Join(r.BaseDir, name)
}

// Probe checks that name exists and reads its pixel dimensions without decoding
// the whole image. A missing file yields an error wrapping ErrNotFound.
func (r *Resolver) Probe(name string) (Info, error) {
	if name == "" {
		return Info{}, fmt.Errorf("empty image name: %w", ErrNotFound)
	}
	path := r.Resolve(name)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, fmt.Errorf("image %s: %w", name, ErrNotFound)
		}
		return Info{}, fmt.Errorf("open image %s: %w", name, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("decode image header %s: %w", name, err)
	}
	return Info{Path: path, Width: cfg.Width, Height: cfg.Height}, nil
}

// Open decodes the image at path (as returned in Info.Path).
func Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}
