package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"quancetong/types"
	"quancetong/vars"
)

// 补贴标准（与政策库当前口径一致）
const (
	applianceBaseRate    = 0.15 // 家电基础补贴比例
	applianceTradeInRate = 0.05 // 家电以旧换新加计比例
	digitalRate          = 0.10 // 数码产品补贴比例
	digitalCap           = 500  // 数码产品单件上限（元）
	carFlatSubsidy       = 5000 // 汽车置换固定补贴（元）
)

var reCapAmount = regexp.MustCompile(`上限(\d+(?:\.\d+)?)元`)

// WelfareService 个人福利计算工作流：检索政策 → 按行业口径试算补贴
type WelfareService struct {
	retriever PolicyRetriever
	logger    zerolog.Logger
}

func NewWelfareService(retriever PolicyRetriever, logger zerolog.Logger) *WelfareService {
	return &WelfareService{retriever: retriever, logger: logger}
}

func (s *WelfareService) CalculateWelfare(ctx context.Context, query string, entities types.Entities) types.WelfareResult {
	rr := s.retriever.RetrievePolicies(ctx, query, entities.Location, entities.Product, entities.Industry, vars.DefaultTopK)
	if len(rr.KbHits) == 0 {
		return types.WelfareResult{Error: "未找到相关政策", KbCitations: rr.KbCitations}
	}
	if entities.PricePaid == nil {
		return types.WelfareResult{Error: "缺少价格信息", KbCitations: rr.KbCitations, AllHits: rr.KbHits}
	}

	price := *entities.PricePaid
	hit := rr.KbHits[0]
	amount, breakdown := s.computeSubsidy(entities.Industry, price, hit)

	result := types.WelfareResult{
		SubsidyAmount:     amount,
		SubsidyBreakdown:  breakdown,
		TotalBenefit:      amount,
		Constraints:       hit.Conditions,
		RequiredMaterials: hit.RequiredMaterials,
		KbCitations:       rr.KbCitations,
		AllHits:           rr.KbHits,
	}
	if hit.ClaimingPlatform != "" {
		result.ClaimingPlatform = types.Ptr(hit.ClaimingPlatform)
	}
	return result
}

func (s *WelfareService) computeSubsidy(industry string, price float64, hit types.Hit) (float64, string) {
	switch industry {
	case vars.IndustryAppliance:
		base := price * applianceBaseRate
		tradeIn := price * applianceTradeInRate
		total := base + tradeIn
		breakdown := fmt.Sprintf("基础补贴15%%: %.2f元; 以旧换新加计5%%: %.2f元", base, tradeIn)
		if capAmt, ok := parseCapAmount(hit.BenefitAmount); ok && total > capAmt {
			total = capAmt
			breakdown += fmt.Sprintf("; 超出上限，按%.0f元封顶", capAmt)
		}
		return round2(total), breakdown
	case vars.IndustryDigital:
		total := price * digitalRate
		breakdown := fmt.Sprintf("数码补贴10%%: %.2f元", total)
		if total > digitalCap {
			total = digitalCap
			breakdown += fmt.Sprintf("; 超出上限，按%d元封顶", digitalCap)
		}
		return round2(total), breakdown
	case vars.IndustryCar:
		return carFlatSubsidy, fmt.Sprintf("汽车置换固定补贴: %d元", carFlatSubsidy)
	default:
		return 0, "暂无补贴规则"
	}
}

// parseCapAmount 从优惠额度文本中解析"上限N元"的数值
func parseCapAmount(benefitAmount *string) (float64, bool) {
	text := types.Deref(benefitAmount)
	if text == "" {
		return 0, false
	}
	m := reCapAmount.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
