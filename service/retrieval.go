package service

import (
	"context"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/rs/zerolog"

	"quancetong/logic/retrieval"
	"quancetong/storage/corpus"
	"quancetong/types"
	"quancetong/vars"
)

// PolicyRetriever 政策检索接口，工作流服务依赖该抽象便于替换实现
type PolicyRetriever interface {
	RetrievePolicies(ctx context.Context, query, location, product, industry string, topK int) types.RetrievalResult
}

// RetrievalService 政策知识库检索：实体过滤 → 向量化 → 余弦排序 → 补充召回
type RetrievalService struct {
	store    *corpus.Store
	embedder embedding.Embedder
	logger   zerolog.Logger
}

func NewRetrievalService(store *corpus.Store, embedder embedding.Embedder, logger zerolog.Logger) *RetrievalService {
	return &RetrievalService{store: store, embedder: embedder, logger: logger}
}

func (s *RetrievalService) RetrievePolicies(ctx context.Context, query, location, product, industry string, topK int) types.RetrievalResult {
	if topK <= 0 {
		topK = vars.DefaultTopK
	}

	policies := s.store.LoadPolicies()
	candidates := retrieval.FilterByEntities(policies, location, product, industry)

	hits := s.rankCandidates(ctx, query, candidates, topK)

	// 主库命中不足且指定了行业时，补充文档全量兜底，不受 topK 限制
	if len(hits) < vars.SupplementFallbackMin && industry != "" {
		docs := s.store.LoadSupplements(industry)
		if len(docs) > 0 {
			hits = append(hits, retrieval.SupplementHits(docs)...)
		}
	}

	return types.RetrievalResult{
		KbHits:      hits,
		KbCitations: Citations(hits),
	}
}

func (s *RetrievalService) rankCandidates(ctx context.Context, query string, candidates []types.PolicyRecord, topK int) []types.Hit {
	if len(candidates) == 0 {
		return nil
	}

	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, query)
	for _, rec := range candidates {
		texts = append(texts, retrieval.DocText(rec))
	}

	vectors, err := s.embedder.EmbedStrings(ctx, texts)
	if err != nil || len(vectors) != len(texts) {
		s.logger.Warn().Err(err).Msg("向量化失败，检索结果为空")
		return nil
	}

	queryVec := vectors[0]
	hits := make([]types.Hit, 0, len(candidates))
	for i, rec := range candidates {
		score := retrieval.Round6(retrieval.Cosine(queryVec, vectors[i+1]))
		hits = append(hits, retrieval.DeriveHit(rec, score))
	}
	return retrieval.RankHits(hits, topK)
}

// Citations 从命中中去重收集引用来源，按字典序以 | 连接
func Citations(hits []types.Hit) string {
	seen := make(map[string]bool)
	var urls []string
	for _, h := range hits {
		u := types.Deref(h.SourceURL)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return strings.Join(urls, "|")
}
