package segment

import (
	"image"
	"math"
)

// GradientConfig 边缘/梯度策略参数
type GradientConfig struct {
	EdgeGate       uint8   // 边缘图上判为边缘点的强度门限
	MaxEdgePoints  int     // 边缘点上限：按扫描顺序取前 N 个（性能/质量折衷，有意保留）
	NearDistance   float64 // 距离 < Near 记满置信 255
	FarDistance    float64 // 距离 >= Far 记 0，中间线性衰减
	ContrastFactor float64 // 边缘增强前的对比度放大倍数
	CompositeGate  uint8
}

func DefaultGradientConfig() GradientConfig {
	return GradientConfig{
		EdgeGate:       50,
		MaxEdgePoints:  100,
		NearDistance:   20,
		FarDistance:    50,
		ContrastFactor: 2,
		CompositeGate:  128,
	}
}

type point struct{ x, y int }

// gradientDistance 边缘/梯度分割：
// 灰度图上做边缘检测与（对比度增强后的）边缘增强，两者 50/50 混合，
// 取前 MaxEdgePoints 个边缘点，按每个像素到最近边缘点的坐标距离算置信度。
func gradientDistance(src *image.NRGBA, cfg GradientConfig) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()

	gray := grayscale(src)
	edges1 := convolve3(gray, kernelFindEdges)
	enhanced := enhanceContrast(gray, cfg.ContrastFactor)
	edges2 := convolve3(enhanced, kernelEdgeEnhanceMore)
	combined := blendGray(edges1, edges2)

	// 边缘点收集按列优先扫描（x 外层、y 内层），上限截断因此是确定的
	points := make([]point, 0, cfg.MaxEdgePoints)
collect:
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if combined.Pix[y*combined.Stride+x] > cfg.EdgeGate {
				points = append(points, point{x, y})
				if len(points) >= cfg.MaxEdgePoints {
					break collect
				}
			}
		}
	}

	mask := image.NewGray(image.Rect(0, 0, w, h))
	if len(points) > 0 {
		parallelRows(h, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				mrow := y * mask.Stride
				for x := 0; x < w; x++ {
					minSq := math.MaxFloat64
					for _, p := range points {
						dx := float64(x - p.x)
						dy := float64(y - p.y)
						if sq := dx*dx + dy*dy; sq < minSq {
							minSq = sq
						}
					}
					d := math.Sqrt(minSq)
					switch {
					case d < cfg.NearDistance:
						mask.Pix[mrow+x] = 255
					case d < cfg.FarDistance:
						mask.Pix[mrow+x] = uint8(255 * (cfg.FarDistance - d) / (cfg.FarDistance - cfg.NearDistance))
					}
				}
			}
		})
	}

	return compositeMask(src, mask, cfg.CompositeGate)
}
