package embed

import (
	"context"
	"math"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"
)

// ZeroDim 降级零向量的维度。全零向量让所有相似度并列为 0，检索退化为
// 稳定但无信息量的排序，而不是失败。
const ZeroDim = 10

// SafeEmbedder 包装内层 embedder：内层缺失或调用失败时降级为等长零向量，
// 并把 NaN/Inf 维度清理为 0，保证检索流程永不因向量化中断。
type SafeEmbedder struct {
	inner  embedding.Embedder
	logger zerolog.Logger
}

func NewSafeEmbedder(inner embedding.Embedder, logger zerolog.Logger) *SafeEmbedder {
	return &SafeEmbedder{inner: inner, logger: logger}
}

func (e *SafeEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	if e.inner == nil {
		return ZeroVectors(len(texts)), nil
	}

	vectors, err := e.inner.EmbedStrings(ctx, texts, opts...)
	if err != nil {
		e.logger.Warn().Err(err).Msg("向量化失败，降级为零向量")
		return ZeroVectors(len(texts)), nil
	}
	if len(vectors) != len(texts) {
		e.logger.Warn().Int("got", len(vectors)).Int("want", len(texts)).Msg("向量数量不符，降级为零向量")
		return ZeroVectors(len(texts)), nil
	}

	cleaned := 0
	for _, vec := range vectors {
		for j, v := range vec {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				vec[j] = 0
				cleaned++
			}
		}
	}
	if cleaned > 0 {
		e.logger.Warn().Int("dims", cleaned).Msg("检测到 NaN/Inf 维度，已清理为 0")
	}
	return vectors, nil
}

// ZeroVectors 生成 n 个固定维度的零向量
func ZeroVectors(n int) [][]float64 {
	vectors := make([][]float64, n)
	for i := range vectors {
		vectors[i] = make([]float64, ZeroDim)
	}
	return vectors
}
