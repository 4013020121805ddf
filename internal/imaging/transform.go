// Package imaging applies local geometric operations to image assets.
// Transforms are best-effort: any decode or encode failure hands the
// original asset back unchanged instead of surfacing an error, matching
// the contract of an opaque transform service.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"

	"github.com/archilab/renderstudio/internal/models"
)

type Op string

const (
	OpRotate Op = "rotate"
	OpFlip   Op = "flip"
)

type Transformer struct {
	log *slog.Logger
}

func NewTransformer(log *slog.Logger) *Transformer {
	return &Transformer{log: log}
}

// Apply returns a new asset with the operation applied, or the original
// asset when the operation cannot be performed.
func (t *Transformer) Apply(asset models.Asset, op Op) models.Asset {
	out, err := apply(asset, op)
	if err != nil {
		t.log.Warn("image transform failed, returning original", "op", string(op), "err", err)
		return asset
	}
	return out
}

func apply(asset models.Asset, op Op) (models.Asset, error) {
	src, _, err := image.Decode(bytes.NewReader(asset.Data))
	if err != nil {
		return models.Asset{}, fmt.Errorf("decode image: %w", err)
	}

	var dst *image.NRGBA
	switch op {
	case OpRotate:
		dst = rotate90(src)
	case OpFlip:
		dst = flipHorizontal(src)
	default:
		return models.Asset{}, fmt.Errorf("unknown transform op: %s", op)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return models.Asset{}, fmt.Errorf("encode png: %w", err)
	}
	return models.Asset{Data: buf.Bytes(), MimeType: "image/png"}, nil
}

// rotate90 rotates clockwise, swapping dimensions.
func rotate90(src image.Image) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(h-1-y, x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func flipHorizontal(src image.Image) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(w-1-x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
