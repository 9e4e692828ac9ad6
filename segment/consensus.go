package segment

import (
	"fmt"
	"image"
)

// Combine 多策略结果共识合并：
// 像素在严格多数（> N/2）策略中不透明才保留为前景，
// 各通道取投了前景票的策略的整数平均；无多数的像素完全透明。
func Combine(results []*image.NRGBA) (*image.NRGBA, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("combine: no results")
	}
	bounds := results[0].Rect
	for i, r := range results[1:] {
		if r.Rect.Dx() != bounds.Dx() || r.Rect.Dy() != bounds.Dy() {
			return nil, fmt.Errorf("combine: result %d size %dx%d != %dx%d",
				i+1, r.Rect.Dx(), r.Rect.Dy(), bounds.Dx(), bounds.Dy())
		}
	}

	n := len(results)
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				votes := 0
				var sum [4]int
				for _, r := range results {
					i := y*r.Stride + x*4
					if r.Pix[i+3] > 0 {
						votes++
						sum[0] += int(r.Pix[i])
						sum[1] += int(r.Pix[i+1])
						sum[2] += int(r.Pix[i+2])
						sum[3] += int(r.Pix[i+3])
					}
				}
				if votes*2 > n {
					o := y*out.Stride + x*4
					out.Pix[o] = uint8(sum[0] / votes)
					out.Pix[o+1] = uint8(sum[1] / votes)
					out.Pix[o+2] = uint8(sum[2] / votes)
					out.Pix[o+3] = uint8(sum[3] / votes)
				}
			}
		}
	})

	return out, nil
}
