package segment

import (
	"image"

	"github.com/disintegration/imaging"
)

// EdgeClusterConfig 边缘聚类策略参数
type EdgeClusterConfig struct {
	Base          float64 // 阈值基数
	EdgeFactor    float64 // 每像素离边距离的阈值增量
	BlurSigma     float64 // 置信掩码的高斯平滑强度
	CompositeGate uint8   // 平滑后掩码的合成门限
}

func DefaultEdgeClusterConfig() EdgeClusterConfig {
	return EdgeClusterConfig{
		Base:          60,
		EdgeFactor:    0.5,
		BlurSigma:     2,
		CompositeGate: 100,
	}
}

// edgeCluster 边缘颜色聚类：背景色取最外圈像素的通道均值，
// 与背景色差异超过自适应阈值的像素判为前景（离背景估计远 = 主体）。
// 靠边像素阈值低，中心像素要差异很大才会被判为背景。
func edgeCluster(src *image.NRGBA, cfg EdgeClusterConfig) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	bg := edgeLineMeanColor(src)

	mask := image.NewGray(image.Rect(0, 0, w, h))
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			srow := y * src.Stride
			mrow := y * mask.Stride
			for x := 0; x < w; x++ {
				i := srow + x*4
				d := colorDistanceF(src.Pix[i], src.Pix[i+1], src.Pix[i+2], bg)
				if d > edgeAdaptiveThreshold(x, y, w, h, cfg.Base, cfg.EdgeFactor) {
					mask.Pix[mrow+x] = 255
				}
			}
		}
	})

	// 高斯平滑置信掩码，再按门限合成
	blurred := imaging.Blur(mask, cfg.BlurSigma)
	smoothed := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		brow := y * blurred.Stride
		srow := y * smoothed.Stride
		for x := 0; x < w; x++ {
			smoothed.Pix[srow+x] = blurred.Pix[brow+x*4]
		}
	}

	return compositeMask(src, smoothed, cfg.CompositeGate)
}
