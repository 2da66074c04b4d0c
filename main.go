package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cloudwego/eino-ext/components/embedding/ollama"
	ollamamodel "github.com/cloudwego/eino-ext/components/model/ollama"
	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"

	"quancetong/api/handler"
	"quancetong/api/router"
	"quancetong/job"
	"quancetong/logic/embed"
	"quancetong/mcp"
	"quancetong/service"
	"quancetong/storage/corpus"
	"quancetong/storage/history"
	"quancetong/vars"
)

func main() {
	// .env 可选，容器部署直接用环境变量
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	ctx := context.Background()

	// 1. 数据层
	store := corpus.NewStore(vars.DATA_DIR, logger)
	historyStore := history.NewStore(filepath.Join(vars.DATA_DIR, "context_history.jsonl"), logger)

	// 2. 向量化与 LLM
	embedder := embed.NewSafeEmbedder(createEmbedder(ctx, logger), logger)
	chatModel := createChatModel(ctx, logger)

	// 3. 业务层
	pool, err := ants.NewPool(8)
	if err != nil {
		logger.Warn().Err(err).Msg("协程池创建失败，区域对比退化为串行")
	}
	timeAgent := mcp.NewTimeAgent(mcp.LoadTimeEndpoint(vars.MCP_CONFIG_FILE), logger)

	retrievalSvc := service.NewRetrievalService(store, embedder, logger)
	policySvc := service.NewPolicyService(retrievalSvc, timeAgent, logger)
	welfareSvc := service.NewWelfareService(retrievalSvc, logger)
	compareSvc := service.NewCompareService(retrievalSvc, pool, logger)
	companySvc := service.NewCompanyService(store, logger)

	// 4. 定时巡检
	job.StartCronJob(store, logger)

	// 5. Web Server
	queryHandler := handler.NewQueryHandler(chatModel, policySvc, welfareSvc, compareSvc, companySvc, historyStore, logger)
	r := gin.Default()
	router.RegisterRoutes(r, queryHandler)

	logger.Info().Str("addr", vars.SERVER_ADDR).Msg("服务启动")
	if err := r.Run(vars.SERVER_ADDR); err != nil {
		logger.Fatal().Err(err).Msg("服务启动失败")
	}
}

// createEmbedder 配置了 DashScope 则优先使用，否则回退到本地 Ollama。
// 两者都不可用时返回 nil，由 SafeEmbedder 降级为零向量。
func createEmbedder(ctx context.Context, logger zerolog.Logger) embedding.Embedder {
	if vars.DASHSCOPE_API_BASE != "" && vars.DASHSCOPE_API_KEY != "" {
		return embed.NewDashScopeEmbedder(vars.DASHSCOPE_API_BASE, vars.DASHSCOPE_API_KEY, vars.DASHSCOPE_EMBED_MODEL)
	}
	embedder, err := ollama.NewEmbedder(ctx, &ollama.EmbeddingConfig{
		BaseURL: vars.OLLAMA_PATH,
		Model:   vars.NOMIC,
		Timeout: 60 * time.Second,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Ollama embedder 初始化失败，检索降级为零向量")
		return nil
	}
	return embedder
}

// createChatModel 优先 DashScope（OpenAI 兼容接口），否则回退本地 Ollama。
// 失败返回 nil，意图识别与回答生成均有规则降级。
func createChatModel(ctx context.Context, logger zerolog.Logger) model.ToolCallingChatModel {
	if vars.DASHSCOPE_API_BASE != "" && vars.DASHSCOPE_API_KEY != "" {
		chatModel, err := openaimodel.NewChatModel(ctx, &openaimodel.ChatModelConfig{
			BaseURL: vars.DASHSCOPE_API_BASE,
			APIKey:  vars.DASHSCOPE_API_KEY,
			Model:   vars.DASHSCOPE_CHAT_MODEL,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("DashScope 模型初始化失败，回退本地 Ollama")
		} else {
			return chatModel
		}
	}
	chatModel, err := ollamamodel.NewChatModel(ctx, &ollamamodel.ChatModelConfig{
		BaseURL: vars.OLLAMA_PATH,
		Model:   vars.QWEN3B,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Ollama 模型初始化失败，意图识别降级为规则识别")
		return nil
	}
	return chatModel
}
