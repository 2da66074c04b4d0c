package embed

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vectors [][]float64
	err     error
}

func (s *stubEmbedder) EmbedStrings(_ context.Context, texts []string, _ ...embedding.Option) ([][]float64, error) {
	return s.vectors, s.err
}

func TestSafeEmbedder(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("内层缺失降级为零向量", func(t *testing.T) {
		e := NewSafeEmbedder(nil, logger)
		got, err := e.EmbedStrings(ctx, []string{"a", "b"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, make([]float64, ZeroDim), got[0])
	})

	t.Run("内层出错降级为零向量", func(t *testing.T) {
		e := NewSafeEmbedder(&stubEmbedder{err: errors.New("boom")}, logger)
		got, err := e.EmbedStrings(ctx, []string{"a"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, make([]float64, ZeroDim), got[0])
	})

	t.Run("向量数量不符降级为零向量", func(t *testing.T) {
		e := NewSafeEmbedder(&stubEmbedder{vectors: [][]float64{{1, 2}}}, logger)
		got, err := e.EmbedStrings(ctx, []string{"a", "b"})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("NaN与Inf清理为0", func(t *testing.T) {
		e := NewSafeEmbedder(&stubEmbedder{vectors: [][]float64{{1, math.NaN(), math.Inf(1)}}}, logger)
		got, err := e.EmbedStrings(ctx, []string{"a"})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 0, 0}, got[0])
	})

	t.Run("正常向量原样返回", func(t *testing.T) {
		e := NewSafeEmbedder(&stubEmbedder{vectors: [][]float64{{0.1, 0.2}}}, logger)
		got, err := e.EmbedStrings(ctx, []string{"a"})
		require.NoError(t, err)
		assert.Equal(t, []float64{0.1, 0.2}, got[0])
	})
}
