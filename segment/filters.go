package segment

import (
	"image"
	"math"
)

// 3x3 卷积核（来自经典 FIND_EDGES / EDGE_ENHANCE_MORE 滤波器）
var (
	kernelFindEdges = [9]int{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	}
	kernelEdgeEnhanceMore = [9]int{
		-1, -1, -1,
		-1, 9, -1,
		-1, -1, -1,
	}
)

// grayscale 亮度灰度化：L = (299R + 587G + 114B) / 1000
func grayscale(img *image.NRGBA) *image.Gray {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	gray := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			i := row + x*4
			l := (299*int(img.Pix[i]) + 587*int(img.Pix[i+1]) + 114*int(img.Pix[i+2])) / 1000
			gray.Pix[y*gray.Stride+x] = uint8(l)
		}
	}
	return gray
}

// convolve3 3x3 卷积，边界复制填充，结果夹紧到 0-255
func convolve3(src *image.Gray, kernel [9]int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(src.Rect)

	clamp := func(v, hi int) int {
		if v < 0 {
			return 0
		}
		if v > hi {
			return hi
		}
		return v
	}

	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				sum := 0
				ki := 0
				for ky := -1; ky <= 1; ky++ {
					sy := clamp(y+ky, h-1)
					for kx := -1; kx <= 1; kx++ {
						sx := clamp(x+kx, w-1)
						sum += int(src.Pix[sy*src.Stride+sx]) * kernel[ki]
						ki++
					}
				}
				dst.Pix[y*dst.Stride+x] = clampU8(sum)
			}
		}
	})
	return dst
}

// enhanceContrast 对比度增强：以全图平均亮度为轴拉伸
// out = mean + factor * (px - mean)
func enhanceContrast(src *image.Gray, factor float64) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(src.Rect)

	var total int64
	for y := 0; y < h; y++ {
		row := y * src.Stride
		for x := 0; x < w; x++ {
			total += int64(src.Pix[row+x])
		}
	}
	mean := math.Floor(float64(total)/float64(w*h) + 0.5)

	var lut [256]uint8
	for i := 0; i < 256; i++ {
		lut[i] = clampU8(int(mean + factor*(float64(i)-mean)))
	}

	for y := 0; y < h; y++ {
		srow := y * src.Stride
		drow := y * dst.Stride
		for x := 0; x < w; x++ {
			dst.Pix[drow+x] = lut[src.Pix[srow+x]]
		}
	}
	return dst
}

// blendGray 两张灰度图 50/50 混合
func blendGray(a, b *image.Gray) *image.Gray {
	dst := image.NewGray(a.Rect)
	for i := range dst.Pix {
		dst.Pix[i] = uint8((int(a.Pix[i]) + int(b.Pix[i])) / 2)
	}
	return dst
}

// medianFilter3 3x3 中值滤波（边界复制填充）
// 二值掩码上等价于多数表决，用于去孤立噪点
func medianFilter3(src *image.Gray) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(src.Rect)

	clamp := func(v, hi int) int {
		if v < 0 {
			return 0
		}
		if v > hi {
			return hi
		}
		return v
	}

	parallelRows(h, func(y0, y1 int) {
		var window [9]uint8
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				n := 0
				for ky := -1; ky <= 1; ky++ {
					sy := clamp(y+ky, h-1)
					for kx := -1; kx <= 1; kx++ {
						sx := clamp(x+kx, w-1)
						window[n] = src.Pix[sy*src.Stride+sx]
						n++
					}
				}
				// 9 个元素插入排序后取中位
				for i := 1; i < 9; i++ {
					v := window[i]
					j := i - 1
					for j >= 0 && window[j] > v {
						window[j+1] = window[j]
						j--
					}
					window[j+1] = v
				}
				dst.Pix[y*dst.Stride+x] = window[4]
			}
		}
	})
	return dst
}

// compositeMask 按掩码合成：mask > gate 保留原像素，否则完全透明
func compositeMask(src *image.NRGBA, mask *image.Gray, gate uint8) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(src.Rect)
	for y := 0; y < h; y++ {
		srow := y * src.Stride
		mrow := y * mask.Stride
		for x := 0; x < w; x++ {
			if mask.Pix[mrow+x] > gate {
				i := srow + x*4
				copy(dst.Pix[i:i+4], src.Pix[i:i+4])
			}
		}
	}
	return dst
}

// alphaMask 从 alpha 通道构建二值占用掩码：alpha > 0 记 255
func alphaMask(img *image.NRGBA) *image.Gray {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	mask := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for x := 0; x < w; x++ {
			if img.Pix[row+x*4+3] > 0 {
				mask.Pix[y*mask.Stride+x] = 255
			}
		}
	}
	return mask
}
