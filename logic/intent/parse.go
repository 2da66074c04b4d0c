package intent

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"quancetong/types"
	"quancetong/vars"
)

// Parse 意图识别 + 实体抽取。优先走 LLM，模型未配置、调用失败或 JSON
// 解析失败时降级为规则识别，调用方拿到的永远是可用结果。
func Parse(ctx context.Context, chatModel model.ToolCallingChatModel, rawText string, logger zerolog.Logger) types.IntentResult {
	if chatModel == nil {
		return FallbackParse(rawText)
	}

	resp, err := chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(vars.INTENT_PROMPT),
		schema.UserMessage("用户查询：" + rawText + "\n\n请分析并输出JSON："),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("意图解析 LLM 调用失败，降级为规则识别")
		return FallbackParse(rawText)
	}

	// 清洗 JSON：只取首尾大括号之间的部分
	raw := resp.Content
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		raw = raw[start : end+1]
	}

	var result types.IntentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		logger.Warn().Err(err).Msg("意图 JSON 解析失败，降级为规则识别")
		return FallbackParse(rawText)
	}
	if result.Intent == "" {
		result.Intent = vars.IntentPolicyParse
	}
	return result
}
