package segment

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBorderSpecClamped(t *testing.T) {
	tests := []struct {
		w, h    int
		strip   int
		strideX int
		strideY int
	}{
		{1, 1, 1, 1, 1},       // 退化输入也不能越界
		{10, 10, 1, 1, 1},     // min/20 为 0 时夹到 1
		{100, 100, 5, 2, 2},   // strip=100/20, stride=100/50
		{200, 60, 3, 4, 1},    // strip=60/20, strideX=4, strideY=60/50=1
		{1000, 1000, 50, 20, 20},
	}
	for _, tt := range tests {
		s := borderSpecFor(tt.w, tt.h)
		assert.Equal(t, tt.strip, s.Strip, "%dx%d strip", tt.w, tt.h)
		assert.Equal(t, tt.strideX, s.StrideX, "%dx%d strideX", tt.w, tt.h)
		assert.Equal(t, tt.strideY, s.StrideY, "%dx%d strideY", tt.w, tt.h)
	}
}

func TestDominantBorderColor(t *testing.T) {
	// 蓝底红方块：边框条带全蓝
	img := redSquareOnBlue()
	got := dominantBorderColor(img, borderSpecFor(100, 100))
	assert.Equal(t, blue, got)
}

func TestDominantBorderColorMixedBorder(t *testing.T) {
	// 上边一行换成红色，其余边框仍以蓝色为众数
	img := uniformImage(20, 20, blue)
	for x := 0; x < 20; x++ {
		img.SetNRGBA(x, 0, red)
	}
	got := dominantBorderColor(img, borderSpecFor(20, 20))
	assert.Equal(t, blue, got)
}

func TestDominantBorderColorOnePixel(t *testing.T) {
	c := color.NRGBA{R: 7, G: 8, B: 9, A: 255}
	img := uniformImage(1, 1, c)
	got := dominantBorderColor(img, borderSpecFor(1, 1))
	assert.Equal(t, c, got)
}

func TestEdgeLineMeanColorUniform(t *testing.T) {
	img := uniformImage(13, 7, color.NRGBA{R: 12, G: 34, B: 56, A: 255})
	mean := edgeLineMeanColor(img)
	assert.InDelta(t, 12, mean[0], 1e-9)
	assert.InDelta(t, 34, mean[1], 1e-9)
	assert.InDelta(t, 56, mean[2], 1e-9)
}

func TestEdgeLineMeanColorTwoByTwo(t *testing.T) {
	// 2x2 时每个像素被行、列各采一次，均值即四像素平均
	img := uniformImage(2, 2, color.NRGBA{A: 255})
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 20, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 30, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 40, A: 255})

	mean := edgeLineMeanColor(img)
	assert.InDelta(t, 25, mean[0], 1e-9)
	assert.InDelta(t, 0, mean[1], 1e-9)
}

func TestEdgeLineMeanIgnoresInterior(t *testing.T) {
	// 内部像素不参与最外圈采样
	img := uniformImage(5, 5, blue)
	img.SetNRGBA(2, 2, red)
	mean := edgeLineMeanColor(img)
	assert.InDelta(t, 0, mean[0], 1e-9)
	assert.InDelta(t, 255, mean[2], 1e-9)
}
