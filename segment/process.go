package segment

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"sync"
)

// StrategyKind 分割策略枚举
type StrategyKind int

const (
	CenterSeed StrategyKind = iota
	EdgeCluster
	GradientDistance
	BorderHistogram
)

func (k StrategyKind) String() string {
	switch k {
	case CenterSeed:
		return "center-seed"
	case EdgeCluster:
		return "edge-cluster"
	case GradientDistance:
		return "gradient-distance"
	case BorderHistogram:
		return "border-histogram"
	}
	return fmt.Sprintf("strategy(%d)", int(k))
}

// Config 各策略独立参数，不共用全局阈值
type Config struct {
	Center   CenterSeedConfig
	Cluster  EdgeClusterConfig
	Gradient GradientConfig
	Border   BorderHistogramConfig
}

func DefaultConfig() Config {
	return Config{
		Center:   DefaultCenterSeedConfig(),
		Cluster:  DefaultEdgeClusterConfig(),
		Gradient: DefaultGradientConfig(),
		Border:   DefaultBorderHistogramConfig(),
	}
}

// Engine 背景分割引擎：选择策略、执行、失败降级
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// ensembleKinds smart 共识路径只投 1、2、3 三票；
// BorderHistogram 保留作降级兜底，不参与投票
var ensembleKinds = [3]StrategyKind{CenterSeed, EdgeCluster, GradientDistance}

// MethodKind 方法名到策略的映射。未识别的名字不报错，落到 smart 共识路径
func MethodKind(method string) (kind StrategyKind, ensemble bool) {
	switch method {
	case "white", "smart-v2":
		return BorderHistogram, false
	case "edge":
		return GradientDistance, false
	case "color":
		return EdgeCluster, false
	default: // "smart" 及其余
		return 0, true
	}
}

// Apply 在独立像素拷贝上执行单个策略。策略内部的 panic
// （退化输入导致的越界等）被回收并转为 error 返回。
func (e *Engine) Apply(kind StrategyKind, src *image.NRGBA) (result *image.NRGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("strategy %s: %v", kind, r)
		}
	}()

	img := cloneNRGBA(src)
	switch kind {
	case CenterSeed:
		return centerSeed(img, e.cfg.Center), nil
	case EdgeCluster:
		return edgeCluster(img, e.cfg.Cluster), nil
	case GradientDistance:
		return gradientDistance(img, e.cfg.Gradient), nil
	case BorderHistogram:
		return borderHistogram(img, e.cfg.Border), nil
	}
	return nil, fmt.Errorf("unknown strategy %d", int(kind))
}

// Process 按方法名处理图像，对可解码的输入永远返回一张图：
// 选中的策略失败则降级到 BorderHistogram，再失败则原图转 RGBA 原样返回。
func (e *Engine) Process(img image.Image, method string) *image.NRGBA {
	src := toNRGBA(img)

	kind, ensemble := MethodKind(method)

	var result *image.NRGBA
	var err error
	if ensemble {
		result, err = e.runEnsemble(src)
	} else {
		result, err = e.Apply(kind, src)
	}
	if err == nil {
		return result
	}

	slog.Warn("strategy failed, falling back", "method", method, "error", err)
	result, err = e.Apply(BorderHistogram, src)
	if err == nil {
		return result
	}

	slog.Warn("fallback strategy failed, returning original", "error", err)
	return cloneNRGBA(src)
}

// runEnsemble 在各自独立的像素拷贝上并发执行三个策略，汇合后共识合并
func (e *Engine) runEnsemble(src *image.NRGBA) (*image.NRGBA, error) {
	var wg sync.WaitGroup
	results := make([]*image.NRGBA, len(ensembleKinds))
	errs := make([]error, len(ensembleKinds))

	for i, kind := range ensembleKinds {
		wg.Add(1)
		go func(i int, kind StrategyKind) {
			defer wg.Done()
			results[i], errs[i] = e.Apply(kind, src)
		}(i, kind)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return Combine(results)
}

// ProcessReader 从字节流解码并处理。解码失败是唯一向调用方
// 透出的错误类别
func (e *Engine) ProcessReader(r io.Reader, method string) (*image.NRGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return e.Process(img, method), nil
}

// ProcessFile 打开本地文件处理，文件句柄在所有退出路径上关闭
func (e *Engine) ProcessFile(path, method string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return e.ProcessReader(f, method)
}
