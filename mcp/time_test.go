package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTimeEndpoint(t *testing.T) {
	t.Run("从配置文件读取", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "mcp_servers.json")
		require.NoError(t, os.WriteFile(file, []byte(`{"mcpServers":{"time":{"url":"https://time.example/mcp"}}}`), 0o644))
		assert.Equal(t, "https://time.example/mcp", LoadTimeEndpoint(file))
	})

	t.Run("文件缺失用默认地址", func(t *testing.T) {
		assert.Equal(t, DefaultTimeURL, LoadTimeEndpoint(filepath.Join(t.TempDir(), "missing.json")))
	})

	t.Run("无time配置用默认地址", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "mcp_servers.json")
		require.NoError(t, os.WriteFile(file, []byte(`{"mcpServers":{}}`), 0o644))
		assert.Equal(t, DefaultTimeURL, LoadTimeEndpoint(file))
	})
}

func TestTimeAgentNow(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	t.Run("正常响应", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"now":"2025-06-15T00:00:00Z"}`))
		}))
		defer srv.Close()

		agent := NewTimeAgent(srv.URL, logger)
		got, err := agent.Now(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2025-06-15T00:00:00Z", got)
	})

	t.Run("兼容current_time字段", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"current_time":"2025-06-15T08:00:00+08:00"}`))
		}))
		defer srv.Close()

		agent := NewTimeAgent(srv.URL, logger)
		got, err := agent.Now(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2025-06-15T08:00:00+08:00", got)
	})

	t.Run("非200报错", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		agent := NewTimeAgent(srv.URL, logger)
		_, err := agent.Now(ctx)
		assert.Error(t, err)
	})

	t.Run("缺少时间字段报错", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"status":"ok"}`))
		}))
		defer srv.Close()

		agent := NewTimeAgent(srv.URL, logger)
		_, err := agent.Now(ctx)
		assert.Error(t, err)
	})
}
