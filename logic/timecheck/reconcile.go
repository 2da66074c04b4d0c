package timecheck

import (
	"sort"
	"strings"
	"time"

	"quancetong/types"
)

// Result 政策有效期校验结果
type Result struct {
	Success      bool     `json:"success"`
	Now          string   `json:"now"`
	ActiveHits   []string `json:"active_hits"`
	InactiveHits []string `json:"inactive_hits"`
	Error        string   `json:"error,omitempty"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate 解析政策起止日期（ISO8601 或 YYYY-MM-DD，兼容 Z 后缀）
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNow 解析外部时间源给出的当前时间，失败或为空时退回本地 UTC 时间
func ParseNow(nowISO string) time.Time {
	if t, ok := ParseDate(nowISO); ok {
		return t
	}
	return time.Now().UTC()
}

// ValidatePolicyPeriods 按当前时间把命中划分为生效/失效两组。
// 起止时间缺失或无法解析的一律按生效处理——宁可多报不可误杀，
// 绝不因为一条格式坏掉的日期悄悄藏起一条政策。
func ValidatePolicyPeriods(hits []types.Hit, nowISO string) Result {
	now := ParseNow(nowISO)
	res := Result{
		Success:      true,
		Now:          now.Format(time.RFC3339),
		ActiveHits:   []string{},
		InactiveHits: []string{},
	}
	for _, hit := range hits {
		if isActive(hit, now) {
			res.ActiveHits = append(res.ActiveHits, HitID(hit))
		} else {
			res.InactiveHits = append(res.InactiveHits, HitID(hit))
		}
	}
	return res
}

// isActive (start 缺失 或 now >= start) 且 (end 缺失 或 now <= end)
func isActive(hit types.Hit, now time.Time) bool {
	if hit.EffectiveStart != nil {
		if start, ok := ParseDate(*hit.EffectiveStart); ok && now.Before(start) {
			return false
		}
	}
	if hit.EffectiveEnd != nil {
		if end, ok := ParseDate(*hit.EffectiveEnd); ok && now.After(end) {
			return false
		}
	}
	return true
}

// HitID 命中标识：优先 doc_id，缺失时退回标题
func HitID(hit types.Hit) string {
	if hit.DocID != "" {
		return hit.DocID
	}
	return hit.Title
}

// SortByValidity 生效命中永远排在失效命中之前，同组内按相似度降序。
// 稳定排序，平分保持原相对顺序。
func SortByValidity(hits []types.Hit, active map[string]bool) []types.Hit {
	sorted := make([]types.Hit, len(hits))
	copy(sorted, hits)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := active[HitID(sorted[i])], active[HitID(sorted[j])]
		if ai != aj {
			return ai
		}
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}

// SelectPrimary 选择主展示政策：有生效命中取第一条；全部失效时取结束日期
// 最晚（字典序最大）的；没有任何结束日期再退回首条。保证存在生效政策时，
// 主展示永远不会是一条已悄然过期的政策。
func SelectPrimary(hits []types.Hit, active map[string]bool) *types.Hit {
	if len(hits) == 0 {
		return nil
	}
	for i := range hits {
		if active[HitID(hits[i])] {
			return &hits[i]
		}
	}
	best := -1
	for i := range hits {
		if hits[i].EffectiveEnd == nil {
			continue
		}
		if best == -1 || *hits[i].EffectiveEnd > *hits[best].EffectiveEnd {
			best = i
		}
	}
	if best >= 0 {
		return &hits[best]
	}
	return &hits[0]
}

// ActiveSet 把校验结果的生效列表转成集合，便于排序与主选取复用
func ActiveSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
