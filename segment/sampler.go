package segment

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/stat"
)

// borderSampleSpec 边框密集采样参数
// 采样开销与周长成正比，与面积无关
type borderSampleSpec struct {
	Strip   int // 边框条带宽度
	StrideX int // 水平方向步长
	StrideY int // 垂直方向步长
}

// borderSpecFor 计算采样参数并夹紧到图像边界内：
// strip = min(w,h)/20，stride = max(1, dim/50)，小图不得越界
func borderSpecFor(width, height int) borderSampleSpec {
	minDim := width
	if height < minDim {
		minDim = height
	}
	strip := minDim / 20
	if strip < 1 {
		strip = 1
	}
	strideX := width / 50
	if strideX < 1 {
		strideX = 1
	}
	strideY := height / 50
	if strideY < 1 {
		strideY = 1
	}
	return borderSampleSpec{Strip: strip, StrideX: strideX, StrideY: strideY}
}

// dominantBorderColor 边框条带密集采样，取出现频率最高的颜色（RGBA 整体计数）
// 频率相同时取先采样到的颜色，保证确定性
func dominantBorderColor(img *image.NRGBA, s borderSampleSpec) color.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()

	counts := make(map[uint32]int)
	firstSeen := make(map[uint32]int)
	order := 0

	sample := func(x, y int) {
		i := y*img.Stride + x*4
		key := uint32(img.Pix[i])<<24 | uint32(img.Pix[i+1])<<16 | uint32(img.Pix[i+2])<<8 | uint32(img.Pix[i+3])
		if _, ok := counts[key]; !ok {
			firstSeen[key] = order
		}
		counts[key]++
		order++
	}

	// 上下边
	for x := 0; x < w; x += s.StrideX {
		for j := 0; j < s.Strip; j++ {
			sample(x, j)
			sample(x, h-1-j)
		}
	}
	// 左右边
	for y := 0; y < h; y += s.StrideY {
		for j := 0; j < s.Strip; j++ {
			sample(j, y)
			sample(w-1-j, y)
		}
	}

	var bestKey uint32
	bestCount := -1
	for key, n := range counts {
		if n > bestCount || (n == bestCount && firstSeen[key] < firstSeen[bestKey]) {
			bestKey = key
			bestCount = n
		}
	}

	return color.NRGBA{
		R: uint8(bestKey >> 24),
		G: uint8(bestKey >> 16),
		B: uint8(bestKey >> 8),
		A: uint8(bestKey),
	}
}

// edgeLineMeanColor 只采样最外一圈像素（四条线，不含内部条带），
// 按通道求算术平均作为背景色估计。角点被行列各采一次。
func edgeLineMeanColor(img *image.NRGBA) [3]float64 {
	w, h := img.Rect.Dx(), img.Rect.Dy()

	n := 2*w + 2*h
	rs := make([]float64, 0, n)
	gs := make([]float64, 0, n)
	bs := make([]float64, 0, n)

	sample := func(x, y int) {
		i := y*img.Stride + x*4
		rs = append(rs, float64(img.Pix[i]))
		gs = append(gs, float64(img.Pix[i+1]))
		bs = append(bs, float64(img.Pix[i+2]))
	}

	for x := 0; x < w; x++ {
		sample(x, 0)
		sample(x, h-1)
	}
	for y := 0; y < h; y++ {
		sample(0, y)
		sample(w-1, y)
	}

	return [3]float64{stat.Mean(rs, nil), stat.Mean(gs, nil), stat.Mean(bs, nil)}
}
