package intent

import (
	"regexp"
	"strconv"
	"strings"

	"quancetong/types"
	"quancetong/vars"
)

// 规则识别用的正则与关键词表
var (
	reDigit    = regexp.MustCompile(`\d`)
	reLocation = regexp.MustCompile(`(济南|青岛|烟台|潍坊|淄博|临沂|济宁|威海|泰安|日照|德州|滨州|聊城|菏泽|东营|枣庄|山东省|山东)`)
	reProduct  = regexp.MustCompile(`(家电|冰箱|洗衣机|电视|空调|手机|平板|智能手表|手环|新能源汽车|汽车|零售|餐饮)`)
	reCompany  = regexp.MustCompile(`(小米|华为|比亚迪|海尔|格力|美的|海信)`)
	reTime     = regexp.MustCompile(`(2025年|2026年|今年|明年)`)
	rePrice    = regexp.MustCompile(`(\d+\.?\d*)\s*(万)?元`)
	reEnergy   = regexp.MustCompile(`(一级|二级|三级)能效`)

	welfareKeywords = []string{"能领多少", "补贴金额", "买了", "花了"}
	compareKeywords = []string{"对比", "比较", "哪个好"}
	investKeywords  = []string{"企业", "公司", "招商", "投资"}

	industryKeywords = []struct {
		industry string
		words    []string
	}{
		{vars.IndustryAppliance, []string{"冰箱", "洗衣机", "电视", "空调", "家电"}},
		{vars.IndustryDigital, []string{"手机", "平板", "智能手表", "手环"}},
		{vars.IndustryCar, []string{"汽车", "新能源汽车", "燃油车"}},
		{vars.IndustryRetailCatering, []string{"零售", "餐饮", "消费券"}},
	}
)

// FallbackParse 降级方案：基于关键词与正则的意图识别
func FallbackParse(rawText string) types.IntentResult {
	result := types.IntentResult{Intent: vars.IntentPolicyParse}

	switch {
	case containsAny(rawText, welfareKeywords) && reDigit.MatchString(rawText):
		result.Intent = vars.IntentPersonalWelfare
	case containsAny(rawText, compareKeywords):
		result.Intent = vars.IntentRegionalCompare
	case containsAny(rawText, investKeywords) && !strings.Contains(rawText, "我们"):
		result.Intent = vars.IntentInvestmentSignal
	}

	if m := reLocation.FindString(rawText); m != "" {
		result.EntityLocation = types.Ptr(m)
	}
	if m := reProduct.FindString(rawText); m != "" {
		result.EntityProduct = types.Ptr(m)
	}
	if m := reCompany.FindString(rawText); m != "" {
		result.EntityCompany = types.Ptr(m)
	}
	if m := reTime.FindString(rawText); m != "" {
		result.EntityTime = types.Ptr(m)
	}
	if m := reEnergy.FindString(rawText); m != "" {
		result.EnergyEfficiencyLevel = types.Ptr(m)
	}

	if m := rePrice.FindStringSubmatch(rawText); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			if m[2] == "万" {
				v *= 10000
			}
			result.PricePaid = types.Ptr(v)
		}
	}

	for _, group := range industryKeywords {
		if containsAny(rawText, group.words) {
			result.EntityIndustry = types.Ptr(group.industry)
			break
		}
	}

	return result
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
