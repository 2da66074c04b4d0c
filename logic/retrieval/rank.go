package retrieval

import (
	"math"
	"sort"

	"quancetong/types"
)

// Cosine 余弦相似度。任一向量零范数时定义为 0，避免除零；维度不一致时
// 只在公共前缀上求点积（范数仍按各自全长算）。
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	var na, nb float64
	for _, v := range a {
		na += v * v
	}
	for _, v := range b {
		nb += v * v
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// RankHits 按相似度降序稳定排序后截断到 topK。稳定排序保证平分（含全零向量
// 降级时的全员平分）保持插入序，语料文件本身近似按时效排列。
func RankHits(hits []types.Hit, topK int) []types.Hit {
	ranked := make([]types.Hit, len(hits))
	copy(ranked, hits)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// SupplementHits 把补充文档转为 0 分命中，供调用方追加在打分结果之后。
// 补充文档不参与排序，永远排在打分命中后面。
func SupplementHits(docs []types.SupplementDocument) []types.Hit {
	hits := make([]types.Hit, 0, len(docs))
	for _, doc := range docs {
		hits = append(hits, types.Hit{
			DocID:   doc.Title,
			Title:   doc.Title,
			Summary: doc.Content,
			Score:   0,
		})
	}
	return hits
}

// Round6 相似度保留 6 位小数
func Round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
