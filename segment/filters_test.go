package segment

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrayscale(t *testing.T) {
	tests := []struct {
		name string
		in   color.NRGBA
		want uint8
	}{
		{"red", color.NRGBA{R: 255, A: 255}, 76},
		{"green", color.NRGBA{G: 255, A: 255}, 149},
		{"blue", color.NRGBA{B: 255, A: 255}, 29},
		{"gray", color.NRGBA{R: 100, G: 100, B: 100, A: 255}, 100},
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grayscale(uniformImage(3, 3, tt.in))
			assert.Equal(t, tt.want, g.Pix[0])
		})
	}
}

func TestConvolve3FindEdgesFlat(t *testing.T) {
	// 平坦区域无边缘响应
	g := grayscale(uniformImage(5, 5, color.NRGBA{R: 80, G: 80, B: 80, A: 255}))
	edges := convolve3(g, kernelFindEdges)
	for _, v := range edges.Pix {
		require.Zero(t, v)
	}
}

func TestConvolve3FindEdgesStep(t *testing.T) {
	// 左半 0 右半 200 的阶梯：边界两侧出响应，远处无响应
	g := image.NewGray(image.Rect(0, 0, 6, 3))
	for y := 0; y < 3; y++ {
		for x := 3; x < 6; x++ {
			g.Pix[y*g.Stride+x] = 200
		}
	}
	edges := convolve3(g, kernelFindEdges)
	assert.Zero(t, edges.GrayAt(0, 1).Y)
	assert.NotZero(t, edges.GrayAt(3, 1).Y)
	assert.Zero(t, edges.GrayAt(5, 1).Y)
}

func TestEnhanceContrastUniformUnchanged(t *testing.T) {
	g := grayscale(uniformImage(4, 4, color.NRGBA{R: 90, G: 90, B: 90, A: 255}))
	out := enhanceContrast(g, 2)
	assert.Equal(t, g.Pix, out.Pix)
}

func TestEnhanceContrastStretches(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 1))
	g.Pix[0] = 100
	g.Pix[1] = 140
	// mean = 120：100 -> 80，140 -> 160
	out := enhanceContrast(g, 2)
	assert.Equal(t, uint8(80), out.Pix[0])
	assert.Equal(t, uint8(160), out.Pix[1])
}

func TestBlendGray(t *testing.T) {
	a := image.NewGray(image.Rect(0, 0, 2, 1))
	b := image.NewGray(image.Rect(0, 0, 2, 1))
	a.Pix[0], b.Pix[0] = 100, 200
	a.Pix[1], b.Pix[1] = 0, 255
	out := blendGray(a, b)
	assert.Equal(t, uint8(150), out.Pix[0])
	assert.Equal(t, uint8(127), out.Pix[1])
}

func TestMedianFilter3RemovesIsolatedNoise(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 5, 5))
	mask.Pix[2*mask.Stride+2] = 255 // 单点噪声
	out := medianFilter3(mask)
	for _, v := range out.Pix {
		require.Zero(t, v)
	}
}

func TestMedianFilter3KeepsSolidRegion(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 5, 5))
	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			mask.Pix[y*mask.Stride+x] = 255
		}
	}
	out := medianFilter3(mask)
	// 实心中心保留，角落被侵蚀（窗口内 0 占多数）
	assert.Equal(t, uint8(255), out.GrayAt(2, 2).Y)
	assert.Zero(t, out.GrayAt(1, 1).Y)
	assert.Zero(t, out.GrayAt(0, 4).Y)
}

func TestCompositeMask(t *testing.T) {
	src := uniformImage(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	mask := image.NewGray(image.Rect(0, 0, 2, 1))
	mask.Pix[0] = 200
	mask.Pix[1] = 128 // 门限是严格大于

	out := compositeMask(src, mask, 128)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, out.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{}, out.NRGBAAt(1, 0))
}

func TestAlphaMask(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, A: 1})
	img.SetNRGBA(1, 0, color.NRGBA{R: 1, A: 0})
	mask := alphaMask(img)
	assert.Equal(t, uint8(255), mask.Pix[0])
	assert.Zero(t, mask.Pix[1])
}
