package retrieval

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"quancetong/types"
	"quancetong/vars"
)

// DocText 拼接参与向量化的规范文本：标题 + 通用规则 JSON
func DocText(rec types.PolicyRecord) string {
	parts := []string{rec.Name}
	if rec.CommonRules != nil {
		if b, err := json.Marshal(rec.CommonRules); err == nil {
			parts = append(parts, string(b))
		}
	}
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

// DeriveHit 把原始政策记录整理为归一化命中。纯函数，同一输入必得同一输出；
// 源记录缺什么字段，命中里就空什么字段，不臆造。
func DeriveHit(rec types.PolicyRecord, score float64) types.Hit {
	hit := types.Hit{
		DocID:          rec.CampaignID,
		Title:          rec.Name,
		Summary:        rec.Name,
		EffectiveStart: rec.StartDate,
		EffectiveEnd:   rec.EndDate,
		BenefitType:    "补贴",
		SourceURL:      rec.SourceURL,
		Score:          score,
	}

	if province, city := DeriveRegion(rec.CampaignID); province != "" || city != "" {
		if province != "" {
			hit.RegionProvince = types.Ptr(province)
		}
		if city != "" {
			hit.RegionCity = types.Ptr(city)
		}
	}

	var std *types.SubsidyStandard
	var qual *types.QualificationRules
	if rec.CommonRules != nil {
		std = rec.CommonRules.SubsidyStandard
		qual = rec.CommonRules.QualificationRules
		hit.ClaimingPlatform = rec.CommonRules.ClaimingPlatform
	}

	// 福利类型与金额：默认现金补贴取价格上限；零售餐饮为满减券，取首档满减
	if std != nil && std.PriceCap != nil {
		hit.BenefitAmount = types.Ptr(fmt.Sprintf("上限%s元", FormatAmount(*std.PriceCap)))
	}
	if strings.Contains(rec.CampaignID, "RETAIL_CATERING") {
		hit.BenefitType = "满减券"
		if std != nil && len(std.Brackets) > 0 {
			b := std.Brackets[0]
			hit.BenefitAmount = types.Ptr(fmt.Sprintf("满%s减%s元", FormatAmount(b.Threshold), FormatAmount(b.Reduction)))
		}
	}

	// 申请条件：能效要求、限购数量、实名认证，有则拼，分号连接
	var conditions []string
	if std != nil {
		if std.EnergyEfficiencyRequirement != "" {
			conditions = append(conditions, "能效要求："+std.EnergyEfficiencyRequirement)
		}
		if std.QuantityLimit != nil && std.QuantityLimit.PerCategory > 0 {
			conditions = append(conditions, fmt.Sprintf("每类限购%d台", std.QuantityLimit.PerCategory))
		}
	}
	if qual != nil && qual.RealNameAuth {
		conditions = append(conditions, "实名认证")
	}
	if len(conditions) > 0 {
		hit.Conditions = types.Ptr(strings.Join(conditions, "; "))
	}

	// 办理流程：审核环节箭头串联
	if len(rec.AuditProcess) > 0 {
		hit.Procedures = types.Ptr("审核流程：" + strings.Join(rec.AuditProcess, " → "))
	}

	// 所需材料：编码映射为可读名称，未知编码原样透传
	if rec.CommonRules != nil && len(rec.CommonRules.RequiredDocuments) > 0 {
		materials := make([]string, 0, len(rec.CommonRules.RequiredDocuments))
		for _, code := range rec.CommonRules.RequiredDocuments {
			if label, ok := vars.DocumentLabels[code]; ok {
				materials = append(materials, label)
			} else {
				materials = append(materials, code)
			}
		}
		hit.RequiredMaterials = types.Ptr(strings.Join(materials, ", "))
	}

	return hit
}

// FormatAmount 金额格式化：整数不带小数点（2000 → "2000"）
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
