package retrieval

import (
	"strings"

	"quancetong/types"
	"quancetong/vars"
)

// FilterByEntities 按抽取实体收窄候选政策，保持原始顺序。
// 三个实体都为空时全量放行。每条记录依次过行业、地域、产品三道过滤。
func FilterByEntities(items []types.PolicyRecord, location, product, industry string) []types.PolicyRecord {
	if len(items) == 0 {
		return items
	}
	if location == "" && product == "" && industry == "" {
		return items
	}

	var filtered []types.PolicyRecord
	for _, rec := range items {
		cid := rec.CampaignID

		industryMatched := false
		if industry != "" {
			if !matchIndustry(cid, industry) {
				continue
			}
			industryMatched = true
		}

		if location != "" {
			province, city := DeriveRegion(cid)
			if !MatchRegion(location, province, city, claimingPlatform(rec)) {
				continue
			}
		}

		if product != "" && !matchProduct(rec, product, industry, industryMatched) {
			continue
		}

		filtered = append(filtered, rec)
	}
	return filtered
}

// matchIndustry campaign_id 含任一行业标记子串即命中
func matchIndustry(campaignID, industry string) bool {
	for _, marker := range vars.IndustryMarkers[industry] {
		if strings.Contains(campaignID, marker) {
			return true
		}
	}
	return false
}

// matchProduct 产品过滤。记录未列出适用产品时，数据源通常把产品范围编码在
// campaign_id 里：行业过滤同时命中则视为隐式适配，否则丢弃。
// 注意：只给 product 不给 industry 时，空产品列表的记录会被丢弃——源数据的
// 不对称行为，保留不纠正。
func matchProduct(rec types.PolicyRecord, product, industry string, industryMatched bool) bool {
	var products []string
	if rec.CommonRules != nil {
		products = rec.CommonRules.SubsidyProducts
	}
	if len(products) == 0 {
		return industryMatched
	}

	terms := expandProduct(product)
	for _, p := range products {
		for _, t := range terms {
			if strings.Contains(p, t) {
				return true
			}
		}
	}

	// 汽车类政策的产品措辞差异极大，凡带"车"字的条目放宽为命中
	if industry == vars.IndustryCar {
		for _, p := range products {
			if strings.Contains(p, "车") {
				return true
			}
		}
	}
	return false
}

// expandProduct 查询词并上同义词表
func expandProduct(product string) []string {
	terms := []string{product}
	if syns, ok := vars.ProductSynonyms[product]; ok {
		terms = append(terms, syns...)
	}
	return terms
}

func claimingPlatform(rec types.PolicyRecord) string {
	if rec.CommonRules == nil {
		return ""
	}
	return rec.CommonRules.ClaimingPlatform
}
