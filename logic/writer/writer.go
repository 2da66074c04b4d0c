package writer

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"quancetong/types"
	"quancetong/vars"
)

// Generate 根据工作流结构化结果生成最终回答。模型未配置或调用失败时
// 直接返回模板化文本，保证任何情况下都有答案。
func Generate(ctx context.Context, chatModel model.ToolCallingChatModel, intent, rawText string, result any, citations string, logger zerolog.Logger) string {
	contextText := buildContext(result)

	if chatModel == nil {
		return fallbackAnswer(contextText, citations)
	}

	userPrompt := fmt.Sprintf("用户问题：%s\n\n结构化数据：\n%s\n\n请生成回答：", rawText, contextText)
	resp, err := chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(vars.WRITER_PROMPT),
		schema.UserMessage(userPrompt),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("回答生成 LLM 调用失败，返回模板文本")
		return fallbackAnswer(contextText, citations)
	}

	answer := strings.TrimSpace(resp.Content)
	if answer == "" {
		return fallbackAnswer(contextText, citations)
	}
	if citations != "" && !strings.Contains(answer, citations) {
		answer += "\n\n📚 参考来源：" + citations
	}
	return answer
}

// buildContext 按结果类型把结构化数据拼成中文上下文
func buildContext(result any) string {
	var b strings.Builder

	switch r := result.(type) {
	case types.PolicyParseResult:
		if r.Error != "" {
			return "查询出错：" + r.Error
		}
		writeField(&b, "政策名称", r.PolicyTitle)
		writeField(&b, "优惠类型", r.BenefitType)
		writeField(&b, "优惠额度", r.BenefitAmount)
		writeField(&b, "适用地区", r.Region)
		writeField(&b, "有效期", r.EffectivePeriod)
		writeField(&b, "申请条件", r.Conditions)
		writeField(&b, "申请流程", r.Procedures)
		writeField(&b, "所需材料", r.RequiredMaterials)
		writeField(&b, "申领平台", r.ClaimingPlatform)
		if r.TimeNow != "" {
			fmt.Fprintf(&b, "当前时间：%s\n", r.TimeNow)
		}
		if len(r.InactiveHits) > 0 {
			fmt.Fprintf(&b, "已过期或未生效的政策：%s\n", strings.Join(r.InactiveHits, "、"))
		}
	case types.WelfareResult:
		if r.Error != "" {
			return "查询出错：" + r.Error
		}
		fmt.Fprintf(&b, "可领补贴金额：%.2f元\n", r.SubsidyAmount)
		if r.SubsidyBreakdown != "" {
			fmt.Fprintf(&b, "计算明细：%s\n", r.SubsidyBreakdown)
		}
		writeField(&b, "限制条件", r.Constraints)
		writeField(&b, "所需材料", r.RequiredMaterials)
		writeField(&b, "申领平台", r.ClaimingPlatform)
	case types.CompareResult:
		if r.Error != "" {
			return "查询出错：" + r.Error
		}
		fmt.Fprintf(&b, "对比地区：%s\n", strings.Join(r.RegionsCompared, "、"))
		for _, row := range r.ComparisonTable {
			fmt.Fprintf(&b, "【%s】%s", row.Region, row.PolicyTitle)
			if amt := types.Deref(row.BenefitAmount); amt != "" {
				fmt.Fprintf(&b, "，优惠：%s", amt)
			}
			if p := types.Deref(row.ClaimingPlatform); p != "" {
				fmt.Fprintf(&b, "，平台：%s", p)
			}
			b.WriteString("\n")
		}
		if r.Summary != "" {
			fmt.Fprintf(&b, "总结：%s\n", r.Summary)
		}
	case types.CompanySignalResult:
		if r.Error != "" {
			return "查询出错：" + r.Error
		}
		fmt.Fprintf(&b, "投资信号：%s\n", r.InvestmentSignal)
		if r.IndustrySummary != "" {
			fmt.Fprintf(&b, "行业总结：%s\n", r.IndustrySummary)
		}
		for i, c := range r.RecommendedCompanies {
			fmt.Fprintf(&b, "%d. %s（评分%.1f）\n", i+1, c.CompanyName, c.TotalScore)
		}
	default:
		fmt.Fprintf(&b, "查询结果：%v\n", result)
	}

	text := b.String()
	if text == "" {
		text = "暂无相关数据。"
	}
	return text
}

func writeField(b *strings.Builder, label string, value *string) {
	if v := types.Deref(value); v != "" {
		fmt.Fprintf(b, "%s：%s\n", label, v)
	}
}

func fallbackAnswer(contextText, citations string) string {
	if citations != "" {
		return contextText + "\n参考来源：" + citations
	}
	return contextText
}
