package segment

import "image"

// CenterSeedConfig 中心种子生长策略参数
type CenterSeedConfig struct {
	Threshold     float64 // 与中心色的固定距离阈值
	CompositeGate uint8   // 合成时的掩码门限
}

func DefaultCenterSeedConfig() CenterSeedConfig {
	return CenterSeedConfig{
		Threshold:     50,
		CompositeGate: 128,
	}
}

// centerSeed 中心种子生长：以图像中心像素为参考色，
// 中间 50% 宽高的矩形无条件记为前景（种子区），
// 其余像素按与中心色的距离 < Threshold 扩张，最后中值滤波去噪。
func centerSeed(src *image.NRGBA, cfg CenterSeedConfig) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	mask := image.NewGray(image.Rect(0, 0, w, h))

	cx, cy := w/2, h/2
	mx, my := w/4, h/4

	// 种子区
	for y := cy - my; y < cy+my; y++ {
		row := y * mask.Stride
		for x := cx - mx; x < cx+mx; x++ {
			mask.Pix[row+x] = 255
		}
	}

	ci := cy*src.Stride + cx*4
	cr, cg, cb := src.Pix[ci], src.Pix[ci+1], src.Pix[ci+2]

	// 颜色相似扩张
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			srow := y * src.Stride
			mrow := y * mask.Stride
			for x := 0; x < w; x++ {
				i := srow + x*4
				if colorDistance(src.Pix[i], src.Pix[i+1], src.Pix[i+2], cr, cg, cb) < cfg.Threshold {
					mask.Pix[mrow+x] = 255
				}
			}
		}
	})

	mask = medianFilter3(mask)
	return compositeMask(src, mask, cfg.CompositeGate)
}
