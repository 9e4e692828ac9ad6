package segment

import "math"

// colorDistance RGB 三通道欧氏距离（忽略 alpha）
func colorDistance(r1, g1, b1, r2, g2, b2 uint8) float64 {
	dr := float64(r1) - float64(r2)
	dg := float64(g1) - float64(g2)
	db := float64(b1) - float64(b2)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// colorDistanceF 与浮点参考色（采样均值）之间的欧氏距离
func colorDistanceF(r, g, b uint8, ref [3]float64) float64 {
	dr := float64(r) - ref[0]
	dg := float64(g) - ref[1]
	db := float64(b) - ref[2]
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// centerAdaptiveThreshold 自适应阈值：随离中心距离增大
// 按半对角线归一化，保证分辨率无关：threshold = base + spread * d/maxD
func centerAdaptiveThreshold(x, y, width, height int, base, spread float64) float64 {
	cx, cy := width/2, height/2
	dx := float64(x - cx)
	dy := float64(y - cy)
	d := math.Sqrt(dx*dx + dy*dy)
	maxD := math.Sqrt(float64(width)/2*float64(width)/2 + float64(height)/2*float64(height)/2)
	return base + d/maxD*spread
}

// edgeAdaptiveThreshold 自适应阈值：随离最近边缘距离增大
// 靠边像素阈值低（更容易判为背景），中心像素阈值高
func edgeAdaptiveThreshold(x, y, width, height int, base, factor float64) float64 {
	d := x
	if y < d {
		d = y
	}
	if width-x-1 < d {
		d = width - x - 1
	}
	if height-y-1 < d {
		d = height - y - 1
	}
	return base + float64(d)*factor
}
