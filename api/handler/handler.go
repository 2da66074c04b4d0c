package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"quancetong/api/response"
	"quancetong/logic/intent"
	"quancetong/logic/writer"
	"quancetong/service"
	"quancetong/storage/history"
	"quancetong/types"
	"quancetong/vars"

	"github.com/cloudwego/eino/components/model"
)

// QueryHandler 统一查询入口：意图识别 → 分发工作流 → 生成回答
type QueryHandler struct {
	chatModel  model.ToolCallingChatModel
	policySvc  *service.PolicyService
	welfareSvc *service.WelfareService
	compareSvc *service.CompareService
	companySvc *service.CompanyService
	history    *history.Store
	logger     zerolog.Logger
}

func NewQueryHandler(
	chatModel model.ToolCallingChatModel,
	policySvc *service.PolicyService,
	welfareSvc *service.WelfareService,
	compareSvc *service.CompareService,
	companySvc *service.CompanyService,
	historyStore *history.Store,
	logger zerolog.Logger,
) *QueryHandler {
	return &QueryHandler{
		chatModel:  chatModel,
		policySvc:  policySvc,
		welfareSvc: welfareSvc,
		compareSvc: compareSvc,
		companySvc: companySvc,
		history:    historyStore,
		logger:     logger,
	}
}

// Query 政策咨询统一入口
func (h *QueryHandler) Query(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "参数错误: query 不能为空")
		return
	}
	rawText := strings.TrimSpace(req.Query)
	if rawText == "" {
		response.Fail(c, "参数错误: query 不能为空")
		return
	}

	ctx := c.Request.Context()
	intentResult := intent.Parse(ctx, h.chatModel, rawText, h.logger)
	entities := intentResult.Entities()

	h.logger.Info().
		Str("intent", intentResult.Intent).
		Str("location", entities.Location).
		Str("industry", entities.Industry).
		Msg("意图识别完成")

	var (
		result    any
		citations string
		errText   string
	)
	switch intentResult.Intent {
	case vars.IntentPersonalWelfare:
		r := h.welfareSvc.CalculateWelfare(ctx, rawText, entities)
		result, citations, errText = r, r.KbCitations, r.Error
	case vars.IntentRegionalCompare:
		r := h.compareSvc.CompareRegions(ctx, rawText, entities)
		result, citations, errText = r, r.KbCitations, r.Error
	case vars.IntentInvestmentSignal:
		r := h.companySvc.AnalyzeCompanySignal(ctx, entities)
		result, citations, errText = r, r.KbCitations, r.Error
	default:
		r := h.policySvc.ParsePolicy(ctx, rawText, entities)
		result, citations, errText = r, r.KbCitations, r.Error
	}

	finalAnswer := writer.Generate(ctx, h.chatModel, intentResult.Intent, rawText, result, citations, h.logger)

	h.history.Save(rawText, intentResult.Intent, result)

	response.Success(c, types.QueryResponse{
		Success:     errText == "",
		Intent:      intentResult.Intent,
		RawText:     rawText,
		Entities:    entities,
		Result:      result,
		FinalAnswer: finalAnswer,
		Citations:   citations,
		Error:       errText,
	})
}

// Health 健康检查
func (h *QueryHandler) Health(c *gin.Context) {
	response.Success(c, map[string]any{"status": "ok"})
}

// History 最近会话记录
func (h *QueryHandler) History(c *gin.Context) {
	limit := 5
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	response.Success(c, h.history.Recent(limit))
}
