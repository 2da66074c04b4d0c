package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quancetong/types"
	"quancetong/vars"
)

// stubRetriever 固定返回预置命中，记录收到的检索参数
type stubRetriever struct {
	resultByRegion map[string]types.RetrievalResult
	result         types.RetrievalResult
	lastLocation   string
}

func (s *stubRetriever) RetrievePolicies(_ context.Context, _, location, _, _ string, _ int) types.RetrievalResult {
	s.lastLocation = location
	if s.resultByRegion != nil {
		return s.resultByRegion[location]
	}
	return s.result
}

func applianceHit() types.Hit {
	return types.Hit{
		DocID:            "JN_APPLIANCE_2025",
		Title:            "济南市家电以旧换新补贴",
		BenefitType:      "补贴",
		BenefitAmount:    types.Ptr("上限2000元"),
		Conditions:       types.Ptr("能效要求：一级能效"),
		ClaimingPlatform: "云闪付",
		SourceURL:        types.Ptr("https://example.gov.cn/jn"),
		Score:            0.9,
	}
}

func TestCalculateWelfare(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("家电补贴触达上限封顶", func(t *testing.T) {
		retriever := &stubRetriever{result: types.RetrievalResult{
			KbHits:      []types.Hit{applianceHit()},
			KbCitations: "https://example.gov.cn/jn",
		}}
		svc := NewWelfareService(retriever, logger)

		got := svc.CalculateWelfare(ctx, "买了10000元的空调能领多少", types.Entities{
			Industry:  vars.IndustryAppliance,
			PricePaid: types.Ptr(10000.0),
		})

		require.Empty(t, got.Error)
		// 15% + 5% = 2000，恰好等于上限
		assert.Equal(t, 2000.0, got.SubsidyAmount)
		assert.Equal(t, got.SubsidyAmount, got.TotalBenefit)
		assert.Contains(t, got.SubsidyBreakdown, "基础补贴15%: 1500.00元")
		assert.Contains(t, got.SubsidyBreakdown, "以旧换新加计5%: 500.00元")
		assert.Equal(t, "云闪付", types.Deref(got.ClaimingPlatform))
		assert.Equal(t, "https://example.gov.cn/jn", got.KbCitations)
	})

	t.Run("家电补贴超上限封顶", func(t *testing.T) {
		retriever := &stubRetriever{result: types.RetrievalResult{KbHits: []types.Hit{applianceHit()}}}
		svc := NewWelfareService(retriever, logger)

		got := svc.CalculateWelfare(ctx, "", types.Entities{
			Industry:  vars.IndustryAppliance,
			PricePaid: types.Ptr(20000.0),
		})
		assert.Equal(t, 2000.0, got.SubsidyAmount)
		assert.Contains(t, got.SubsidyBreakdown, "封顶")
	})

	t.Run("数码补贴超500封顶", func(t *testing.T) {
		hit := applianceHit()
		hit.BenefitAmount = nil
		retriever := &stubRetriever{result: types.RetrievalResult{KbHits: []types.Hit{hit}}}
		svc := NewWelfareService(retriever, logger)

		got := svc.CalculateWelfare(ctx, "", types.Entities{
			Industry:  vars.IndustryDigital,
			PricePaid: types.Ptr(8000.0),
		})
		assert.Equal(t, 500.0, got.SubsidyAmount)
	})

	t.Run("汽车固定补贴", func(t *testing.T) {
		retriever := &stubRetriever{result: types.RetrievalResult{KbHits: []types.Hit{applianceHit()}}}
		svc := NewWelfareService(retriever, logger)

		got := svc.CalculateWelfare(ctx, "", types.Entities{
			Industry:  vars.IndustryCar,
			PricePaid: types.Ptr(150000.0),
		})
		assert.Equal(t, 5000.0, got.SubsidyAmount)
	})

	t.Run("未知行业无补贴规则不估算", func(t *testing.T) {
		retriever := &stubRetriever{result: types.RetrievalResult{KbHits: []types.Hit{applianceHit()}}}
		svc := NewWelfareService(retriever, logger)

		got := svc.CalculateWelfare(ctx, "", types.Entities{
			Industry:  vars.IndustryRetailCatering,
			PricePaid: types.Ptr(300.0),
		})
		assert.Equal(t, 0.0, got.SubsidyAmount)
		assert.Equal(t, "暂无补贴规则", got.SubsidyBreakdown)
	})

	t.Run("缺少价格信息", func(t *testing.T) {
		retriever := &stubRetriever{result: types.RetrievalResult{KbHits: []types.Hit{applianceHit()}}}
		svc := NewWelfareService(retriever, logger)

		got := svc.CalculateWelfare(ctx, "", types.Entities{Industry: vars.IndustryAppliance})
		assert.Equal(t, "缺少价格信息", got.Error)
	})

	t.Run("未找到政策", func(t *testing.T) {
		svc := NewWelfareService(&stubRetriever{}, logger)
		got := svc.CalculateWelfare(ctx, "", types.Entities{PricePaid: types.Ptr(100.0)})
		assert.Equal(t, "未找到相关政策", got.Error)
	})
}

func TestParseCapAmount(t *testing.T) {
	v, ok := parseCapAmount(types.Ptr("上限2000元"))
	require.True(t, ok)
	assert.Equal(t, 2000.0, v)

	v, ok = parseCapAmount(types.Ptr("上限1500.5元"))
	require.True(t, ok)
	assert.Equal(t, 1500.5, v)

	_, ok = parseCapAmount(types.Ptr("满100减30元"))
	assert.False(t, ok)

	_, ok = parseCapAmount(nil)
	assert.False(t, ok)
}
