package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archilab/renderstudio/internal/models"
)

func testTransformer() *Transformer {
	return NewTransformer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// encodeTestImage builds a 2x3 PNG with a unique color per pixel so pixel
// positions can be tracked through transforms.
func encodeTestImage(t *testing.T) models.Asset {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(10 * (x + 1)), G: uint8(10 * (y + 1)), B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return models.Asset{Data: buf.Bytes(), MimeType: "image/png"}
}

func decodePixels(t *testing.T, asset models.Asset) image.Image {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(asset.Data))
	require.NoError(t, err)
	return img
}

func TestApplyRotateSwapsDimensions(t *testing.T) {
	tr := testTransformer()
	src := encodeTestImage(t)

	out := tr.Apply(src, OpRotate)
	require.Equal(t, "image/png", out.MimeType)

	img := decodePixels(t, out)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	// Clockwise rotation: source (0,0) lands in the top-right corner.
	srcImg := decodePixels(t, src)
	assert.Equal(t, srcImg.At(0, 0), img.At(2, 0))
	assert.Equal(t, srcImg.At(0, 2), img.At(0, 0))
}

func TestApplyRotateFourTimesIsIdentity(t *testing.T) {
	tr := testTransformer()
	src := encodeTestImage(t)

	out := src
	for i := 0; i < 4; i++ {
		out = tr.Apply(out, OpRotate)
	}

	want := decodePixels(t, src)
	got := decodePixels(t, out)
	require.Equal(t, want.Bounds(), got.Bounds())
	for y := 0; y < want.Bounds().Dy(); y++ {
		for x := 0; x < want.Bounds().Dx(); x++ {
			assert.Equal(t, want.At(x, y), got.At(x, y))
		}
	}
}

func TestApplyFlipTwiceIsIdentity(t *testing.T) {
	tr := testTransformer()
	src := encodeTestImage(t)

	once := tr.Apply(src, OpFlip)
	twice := tr.Apply(once, OpFlip)

	want := decodePixels(t, src)
	got := decodePixels(t, twice)
	require.Equal(t, want.Bounds(), got.Bounds())
	for y := 0; y < want.Bounds().Dy(); y++ {
		for x := 0; x < want.Bounds().Dx(); x++ {
			assert.Equal(t, want.At(x, y), got.At(x, y))
		}
	}
}

func TestApplyFlipMirrorsHorizontally(t *testing.T) {
	tr := testTransformer()
	src := encodeTestImage(t)

	out := tr.Apply(src, OpFlip)
	srcImg := decodePixels(t, src)
	img := decodePixels(t, out)

	assert.Equal(t, srcImg.Bounds(), img.Bounds())
	assert.Equal(t, srcImg.At(0, 1), img.At(1, 1))
	assert.Equal(t, srcImg.At(1, 1), img.At(0, 1))
}

func TestApplyUndecodableDataReturnsOriginal(t *testing.T) {
	tr := testTransformer()
	src := models.Asset{Data: []byte("not an image"), MimeType: "image/png"}

	out := tr.Apply(src, OpRotate)
	assert.Equal(t, src, out)
}

func TestApplyUnknownOpReturnsOriginal(t *testing.T) {
	tr := testTransformer()
	src := encodeTestImage(t)

	out := tr.Apply(src, Op("shear"))
	assert.Equal(t, src, out)
}
