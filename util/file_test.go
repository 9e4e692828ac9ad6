package util

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}
	return img
}

func TestSaveAndOpenImage(t *testing.T) {
	defer Trace("save and open image")()

	path := filepath.Join(t.TempDir(), "roundtrip.png")
	require.NoError(t, SavePNG(path, testImage(16, 8)))

	got, err := OpenImage(path)
	require.NoError(t, err)
	assert.Equal(t, 16, got.Bounds().Dx())
	assert.Equal(t, 8, got.Bounds().Dy())
}

func TestOpenImageMissingFile(t *testing.T) {
	_, err := OpenImage(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

func TestOpenImageNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))
	_, err := OpenImage(path)
	require.Error(t, err)
}

func TestResizeWithinMax(t *testing.T) {
	// 超限按最长边等比缩小
	resized := ResizeWithinMax(testImage(200, 100), 50)
	assert.Equal(t, 50, resized.Bounds().Dx())
	assert.Equal(t, 25, resized.Bounds().Dy())

	// 不超限不缩放
	same := ResizeWithinMax(testImage(40, 30), 50)
	assert.Equal(t, 40, same.Bounds().Dx())
	assert.Equal(t, 30, same.Bounds().Dy())
}
