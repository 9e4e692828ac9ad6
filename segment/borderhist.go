package segment

import "image"

// BorderHistogramConfig 边框直方图自适应阈值策略（smart v2）参数
type BorderHistogramConfig struct {
	BaseTolerance float64 // 中心处的基础容差
	Spread        float64 // 随离中心距离增加的容差增量
	CompositeGate uint8   // 小区域清理后的掩码门限
}

func DefaultBorderHistogramConfig() BorderHistogramConfig {
	return BorderHistogramConfig{
		BaseTolerance: 30,
		Spread:        40,
		CompositeGate: 128,
	}
}

// borderHistogram smart v2：边框条带密集采样取众数作为背景色，
// 逐像素按离中心距离自适应容差，距背景色近的像素置为透明，
// 最后用 3x3 中值滤波清理孤立小区域。
func borderHistogram(src *image.NRGBA, cfg BorderHistogramConfig) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()

	bg := dominantBorderColor(src, borderSpecFor(w, h))

	out := cloneNRGBA(src)
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := y * out.Stride
			for x := 0; x < w; x++ {
				i := row + x*4
				tol := centerAdaptiveThreshold(x, y, w, h, cfg.BaseTolerance, cfg.Spread)
				if colorDistance(out.Pix[i], out.Pix[i+1], out.Pix[i+2], bg.R, bg.G, bg.B) < tol {
					out.Pix[i] = 255
					out.Pix[i+1] = 255
					out.Pix[i+2] = 255
					out.Pix[i+3] = 0
				}
			}
		}
	})

	// 小区域清理：alpha 占用掩码中值滤波后重新作为 alpha 闸门
	mask := medianFilter3(alphaMask(out))
	return compositeMask(out, mask, cfg.CompositeGate)
}
