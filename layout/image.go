package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ByLCY/pitchdeck/assets"
)

// MissingPolicy decides what an image slot shows when its file is absent.
type MissingPolicy string

const (
	MissingPlaceholder MissingPolicy = "placeholder"
	MissingSkip        MissingPolicy = "skip"
)

// placeholderAspect gives a placeholder its height when the slot only fixes
// a width.
const placeholderAspect = 0.6

// ImageSlot is a request to put an image at a position.
type ImageSlot struct {
	Name    string
	X, Y    float64
	Width   float64 // target width; 0 derives it from Height
	Height  float64 // optional; fixes the placeholder height
	Missing MissingPolicy
	Label   string  // placeholder caption, defaults to the file name
	MaxY    float64 // placeholder bottom limit, 0 for none
}

// Placement is what PlaceImage decided to draw. Exactly one of Image and
// Placeholder is set unless the slot was skipped.
type Placement struct {
	Image       *ImageBox
	Placeholder *Rect
	Label       string
}

// Bottom returns the y coordinate just below whatever was placed, or y when
// nothing was placed.
func (p Placement) Bottom(y float64) float64 {
	switch {
	case p.Image != nil:
		return p.Image.Y + p.Image.Height
	case p.Placeholder != nil:
		return p.Placeholder.Y + p.Placeholder.Height
	default:
		return y
	}
}

// PlaceImage scales an existing image to the slot width while keeping its
// aspect ratio. A missing file becomes a placeholder rectangle of the
// requested size, filled with fill, or nothing under MissingSkip. Only
// unreadable (as opposed to absent) files return an error.
func PlaceImage(prober AssetProber, slot ImageSlot, fill Color) (Placement, error) {
	info, err := prober.Probe(slot.Name)
	if err == nil {
		box := ImageBox{Name: slot.Name, Path: info.Path, X: slot.X, Y: slot.Y, Width: slot.Width, Height: slot.Height}
		if aspect := info.Aspect(); aspect > 0 {
			switch {
			case box.Width > 0:
				box.Height = box.Width * aspect
			case box.Height > 0:
				box.Width = box.Height / aspect
			default:
				// no target size: one pixel per point
				box.Width = float64(info.Width) * PtToMm
				box.Height = float64(info.Height) * PtToMm
			}
		}
		return Placement{Image: &box}, nil
	}
	if !errors.Is(err, assets.ErrNotFound) {
		return Placement{}, fmt.Errorf("place image %s: %w", slot.Name, err)
	}

	slog.Debug("image missing", "id", slot.Name, "policy", string(slot.Missing))
	if slot.Missing == MissingSkip {
		return Placement{}, nil
	}

	w, h := slot.Width, slot.Height
	if w <= 0 {
		w = h
	}
	if h <= 0 {
		h = w * placeholderAspect
	}
	if slot.MaxY > 0 && slot.Y+h > slot.MaxY {
		h = slot.MaxY - slot.Y
	}
	if h < 0 {
		h = 0
	}
	label := slot.Label
	if label == "" && slot.Name != "" {
		label = filepath.Base(slot.Name)
	}
	fc := fill
	return Placement{
		Placeholder: &Rect{X: slot.X, Y: slot.Y, Width: w, Height: h, FillColor: &fc, Placeholder: true},
		Label:       label,
	}, nil
}
