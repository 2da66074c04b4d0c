package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quancetong/types"
)

type fixedTime struct{ now string }

func (f fixedTime) Now(context.Context) (string, error) { return f.now, nil }

func TestParsePolicy(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	now := fixedTime{now: "2025-06-15T00:00:00Z"}

	t.Run("命中生效政策完整扁平化", func(t *testing.T) {
		hit := applianceHit()
		hit.RegionProvince = types.Ptr("山东省")
		hit.RegionCity = types.Ptr("济南市")
		hit.EffectiveStart = types.Ptr("2025-01-01")
		hit.EffectiveEnd = types.Ptr("2025-12-31")
		retriever := &stubRetriever{result: types.RetrievalResult{
			KbHits:      []types.Hit{hit},
			KbCitations: "https://example.gov.cn/jn",
		}}
		svc := NewPolicyService(retriever, now, logger)

		got := svc.ParsePolicy(ctx, "济南家电补贴", types.Entities{Location: "济南"})

		require.Empty(t, got.Error)
		assert.Equal(t, "济南市家电以旧换新补贴", types.Deref(got.PolicyTitle))
		assert.Equal(t, "补贴", types.Deref(got.BenefitType))
		assert.Equal(t, "上限2000元", types.Deref(got.BenefitAmount))
		assert.Equal(t, "济南市 山东省", types.Deref(got.Region))
		assert.Equal(t, "2025-01-01 至 2025-12-31", types.Deref(got.EffectivePeriod))
		assert.Equal(t, "云闪付", types.Deref(got.ClaimingPlatform))
		assert.Equal(t, []string{"JN_APPLIANCE_2025"}, got.ActiveHits)
		assert.Equal(t, "https://example.gov.cn/jn", got.KbCitations)
	})

	t.Run("生效政策排在失效政策前", func(t *testing.T) {
		expired := applianceHit()
		expired.DocID = "JN_APPLIANCE_2024"
		expired.Title = "去年的补贴"
		expired.EffectiveStart = types.Ptr("2024-01-01")
		expired.EffectiveEnd = types.Ptr("2024-12-31")
		expired.Score = 0.95

		active := applianceHit()
		active.EffectiveStart = types.Ptr("2025-01-01")
		active.EffectiveEnd = types.Ptr("2025-12-31")
		active.Score = 0.5

		retriever := &stubRetriever{result: types.RetrievalResult{KbHits: []types.Hit{expired, active}}}
		svc := NewPolicyService(retriever, now, logger)

		got := svc.ParsePolicy(ctx, "家电补贴", types.Entities{})
		// 主展示取生效政策，哪怕失效的相似度更高
		assert.Equal(t, "济南市家电以旧换新补贴", types.Deref(got.PolicyTitle))
		require.Len(t, got.AllHits, 2)
		assert.Equal(t, "JN_APPLIANCE_2025", got.AllHits[0].DocID)
		assert.Equal(t, []string{"JN_APPLIANCE_2024"}, got.InactiveHits)
	})

	t.Run("全部失效取结束最晚的", func(t *testing.T) {
		older := applianceHit()
		older.DocID = "JN_2023"
		older.Title = "2023活动"
		older.EffectiveStart = types.Ptr("2023-01-01")
		older.EffectiveEnd = types.Ptr("2023-12-31")

		newer := applianceHit()
		newer.DocID = "JN_2024"
		newer.Title = "2024活动"
		newer.EffectiveStart = types.Ptr("2024-01-01")
		newer.EffectiveEnd = types.Ptr("2024-12-31")

		retriever := &stubRetriever{result: types.RetrievalResult{KbHits: []types.Hit{older, newer}}}
		svc := NewPolicyService(retriever, now, logger)

		got := svc.ParsePolicy(ctx, "家电补贴", types.Entities{})
		assert.Equal(t, "2024活动", types.Deref(got.PolicyTitle))
	})

	t.Run("起止日期不全不拼有效期", func(t *testing.T) {
		hit := applianceHit()
		hit.EffectiveStart = types.Ptr("2025-01-01")
		retriever := &stubRetriever{result: types.RetrievalResult{KbHits: []types.Hit{hit}}}
		svc := NewPolicyService(retriever, now, logger)

		got := svc.ParsePolicy(ctx, "家电补贴", types.Entities{})
		assert.Nil(t, got.EffectivePeriod)
	})

	t.Run("未找到政策", func(t *testing.T) {
		svc := NewPolicyService(&stubRetriever{}, now, logger)
		got := svc.ParsePolicy(ctx, "不存在的政策", types.Entities{})
		assert.Equal(t, "未找到相关政策", got.Error)
	})
}

func TestFormatRegion(t *testing.T) {
	assert.Equal(t, "济南市 山东省", formatRegion(&types.Hit{
		RegionProvince: types.Ptr("山东省"),
		RegionCity:     types.Ptr("济南市"),
	}))
	assert.Equal(t, "山东省", formatRegion(&types.Hit{RegionProvince: types.Ptr("山东省")}))
	assert.Equal(t, "", formatRegion(&types.Hit{}))
}
