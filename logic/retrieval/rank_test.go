package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quancetong/types"
)

func TestCosine(t *testing.T) {
	t.Run("同向向量相似度为1", func(t *testing.T) {
		assert.InDelta(t, 1.0, Cosine([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-9)
	})

	t.Run("正交向量相似度为0", func(t *testing.T) {
		assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}), 1e-9)
	})

	t.Run("反向向量相似度为-1", func(t *testing.T) {
		assert.InDelta(t, -1.0, Cosine([]float64{1, 0}, []float64{-1, 0}), 1e-9)
	})

	t.Run("零范数返回0", func(t *testing.T) {
		assert.Equal(t, 0.0, Cosine([]float64{0, 0, 0}, []float64{1, 2, 3}))
		assert.Equal(t, 0.0, Cosine(nil, []float64{1, 2, 3}))
	})

	t.Run("维度不一致按公共前缀求点积", func(t *testing.T) {
		// dot = 1*1 = 1, |a| = 1, |b| = sqrt(2)
		got := Cosine([]float64{1}, []float64{1, 1})
		assert.InDelta(t, 0.7071067, got, 1e-6)
	})
}

func TestRankHits(t *testing.T) {
	hits := []types.Hit{
		{DocID: "a", Score: 0.2},
		{DocID: "b", Score: 0.9},
		{DocID: "c", Score: 0.5},
		{DocID: "d", Score: 0.9},
	}

	t.Run("按相似度降序截断", func(t *testing.T) {
		got := RankHits(hits, 3)
		require.Len(t, got, 3)
		assert.Equal(t, "b", got[0].DocID)
		assert.Equal(t, "d", got[1].DocID) // 平分保持插入序
		assert.Equal(t, "c", got[2].DocID)
	})

	t.Run("不修改输入切片", func(t *testing.T) {
		RankHits(hits, 2)
		assert.Equal(t, "a", hits[0].DocID)
	})

	t.Run("全员平分保持插入序", func(t *testing.T) {
		tied := []types.Hit{{DocID: "x"}, {DocID: "y"}, {DocID: "z"}}
		got := RankHits(tied, 0)
		assert.Equal(t, []string{"x", "y", "z"}, []string{got[0].DocID, got[1].DocID, got[2].DocID})
	})
}

func TestSupplementHits(t *testing.T) {
	docs := []types.SupplementDocument{
		{Title: "家电补贴细则", Content: "正文"},
	}
	got := SupplementHits(docs)
	require.Len(t, got, 1)
	assert.Equal(t, "家电补贴细则", got[0].DocID)
	assert.Equal(t, "家电补贴细则", got[0].Title)
	assert.Equal(t, "正文", got[0].Summary)
	assert.Equal(t, 0.0, got[0].Score)
}

func TestRound6(t *testing.T) {
	assert.Equal(t, 0.123457, Round6(0.1234567))
	assert.Equal(t, 1.0, Round6(1.0000001))
}
