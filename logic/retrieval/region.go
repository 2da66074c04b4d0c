package retrieval

import "strings"

// campaign_id 前缀 → 行政区划。目前数据源只覆盖山东，扩展时只改这张表。
var regionPrefixes = []struct {
	prefix   string
	province string
	city     string
}{
	{"JN_", "山东省", "济南市"},
	{"QD_", "山东省", "青岛市"},
	{"YT_", "山东省", "烟台市"},
	{"SD_", "山东省", ""}, // 省级活动无市
}

// DeriveRegion 从 campaign_id 前缀推导 (省, 市)。无法识别的前缀两者皆空。
func DeriveRegion(campaignID string) (province, city string) {
	for _, p := range regionPrefixes {
		if strings.HasPrefix(campaignID, p.prefix) {
			return p.province, p.city
		}
	}
	return "", ""
}

// MatchRegion 地域模糊匹配：请求地名与派生省/市互为子串即命中（容忍
// "济南"/"济南市" 这类部分地名），或者地名出现在申领平台名称里（省级平台
// 只在渠道名里体现地域）。有意保持宽松，换更严格的地名归一化表时只动这里。
func MatchRegion(loc, province, city, platform string) bool {
	if loc == "" {
		return true
	}
	if bidiContains(loc, city) || bidiContains(loc, province) {
		return true
	}
	return platform != "" && strings.Contains(platform, loc)
}

// bidiContains 双向子串匹配，空串不算命中
func bidiContains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
