package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeURL 时间服务默认地址
const DefaultTimeURL = "https://mcp.api-inference.modelscope.net/487f79a94fb641/mcp"

type serverConfig struct {
	URL string `json:"url"`
}

type mcpConfig struct {
	McpServers map[string]serverConfig `json:"mcpServers"`
}

// LoadTimeEndpoint 从 mcp_servers.json 读取时间服务地址，文件缺失或无 time
// 配置时使用默认地址
func LoadTimeEndpoint(configFile string) string {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return DefaultTimeURL
	}
	var cfg mcpConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultTimeURL
	}
	if srv, ok := cfg.McpServers["time"]; ok && srv.URL != "" {
		return srv.URL
	}
	return DefaultTimeURL
}

// TimeAgent 外部时间服务客户端，为有效期校验提供权威当前时间
type TimeAgent struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

func NewTimeAgent(endpoint string, logger zerolog.Logger) *TimeAgent {
	return &TimeAgent{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

// Now 获取当前时间字符串。服务不可达或响应异常时返回错误，由调用方
// 降级到本地时间。
func (a *TimeAgent) Now(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("时间服务返回状态码 %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("时间服务响应解析失败: %w", err)
	}
	for _, key := range []string{"now", "current_time", "iso", "time"} {
		if v, ok := payload[key].(string); ok && v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("时间服务响应缺少时间字段")
}
