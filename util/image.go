package util

import (
	"image"

	"github.com/nfnt/resize"
)

// ResizeWithinMax 缩放（最长边 <= maxSize），不放大
func ResizeWithinMax(img image.Image, maxSize int) image.Image {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	longest := max(w, h)

	if longest <= maxSize {
		return img
	}

	scale := float64(maxSize) / float64(longest)
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)

	return resize.Resize(uint(newW), uint(newH), img, resize.Lanczos3)
}
