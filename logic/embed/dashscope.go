package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/embedding"
)

// DashScopeEmbedder 通过 OpenAI 兼容的 /embeddings 接口批量向量化，
// 实现 eino 的 embedding.Embedder。单次请求，无重试，超时由 client 限定；
// 失败的降级（零向量）由 SafeEmbedder 负责。
type DashScopeEmbedder struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewDashScopeEmbedder(baseURL, apiKey, model string) *DashScopeEmbedder {
	return &DashScopeEmbedder{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (e *DashScopeEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	body, err := json.Marshal(embeddingRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding 服务返回状态 %d", resp.StatusCode)
	}

	var parsed embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("embedding 响应解析失败: %w", err)
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("embedding 数量不符: 返回 %d 期望 %d", len(parsed.Data), len(texts))
	}

	vectors := make([][]float64, len(texts))
	for i, d := range parsed.Data {
		idx := d.Index
		if idx < 0 || idx >= len(vectors) {
			idx = i
		}
		vectors[idx] = d.Embedding
	}
	for i, vec := range vectors {
		if vec == nil {
			return nil, fmt.Errorf("embedding 响应缺少第 %d 条向量", i)
		}
	}
	return vectors, nil
}
