package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"

	"quancetong/types"
	"quancetong/vars"
)

// CompareService 区域政策对比工作流：按地区并发检索后汇总成对比表
type CompareService struct {
	retriever PolicyRetriever
	pool      *ants.Pool
	logger    zerolog.Logger
}

func NewCompareService(retriever PolicyRetriever, pool *ants.Pool, logger zerolog.Logger) *CompareService {
	return &CompareService{retriever: retriever, pool: pool, logger: logger}
}

func (s *CompareService) CompareRegions(ctx context.Context, query string, entities types.Entities) types.CompareResult {
	regions := splitRegions(entities.Location)
	if len(regions) == 0 {
		return types.CompareResult{Error: "缺少地区信息"}
	}

	rows := make([]types.RegionComparison, len(regions))
	citations := make([]string, len(regions))

	var wg sync.WaitGroup
	for i, region := range regions {
		wg.Add(1)
		i, region := i, region
		task := func() {
			defer wg.Done()
			rr := s.retriever.RetrievePolicies(ctx, query, region, entities.Product, entities.Industry, vars.CompareTopK)
			rows[i] = buildComparisonRow(region, rr.KbHits)
			citations[i] = rr.KbCitations
		}
		if s.pool == nil || s.pool.Submit(task) != nil {
			task()
		}
	}
	wg.Wait()

	return types.CompareResult{
		RegionsCompared: regions,
		ComparisonTable: rows,
		Summary:         buildSummary(rows),
		KbCitations:     mergeCitations(citations),
	}
}

// splitRegions 多地对比的地点用 | 分隔
func splitRegions(location string) []string {
	var regions []string
	for _, part := range strings.Split(location, "|") {
		if part = strings.TrimSpace(part); part != "" {
			regions = append(regions, part)
		}
	}
	return regions
}

func buildComparisonRow(region string, hits []types.Hit) types.RegionComparison {
	row := types.RegionComparison{Region: region, PolicyTitle: "未找到政策"}
	if len(hits) == 0 {
		return row
	}
	top := hits[0]
	row.PolicyTitle = top.Title
	if top.BenefitType != "" {
		row.BenefitType = types.Ptr(top.BenefitType)
	}
	row.BenefitAmount = top.BenefitAmount
	row.Conditions = top.Conditions
	if top.ClaimingPlatform != "" {
		row.ClaimingPlatform = types.Ptr(top.ClaimingPlatform)
	}
	if start, end := types.Deref(top.EffectiveStart), types.Deref(top.EffectiveEnd); start != "" && end != "" {
		row.EffectivePeriod = types.Ptr(start + " 至 " + end)
	}
	return row
}

func buildSummary(rows []types.RegionComparison) string {
	var parts []string
	for _, row := range rows {
		if row.PolicyTitle == "未找到政策" {
			continue
		}
		amount := types.Deref(row.BenefitAmount)
		if amount == "" {
			amount = "暂无额度信息"
		}
		platform := types.Deref(row.ClaimingPlatform)
		if platform == "" {
			platform = "未知"
		}
		parts = append(parts, fmt.Sprintf("%s：%s，申领平台：%s", row.Region, amount, platform))
	}
	if len(parts) == 0 {
		return "各地区暂无可对比政策"
	}
	return strings.Join(parts, "; ")
}

func mergeCitations(citations []string) string {
	seen := make(map[string]bool)
	var merged []string
	for _, c := range citations {
		for _, u := range strings.Split(c, "|") {
			if u == "" || seen[u] {
				continue
			}
			seen[u] = true
			merged = append(merged, u)
		}
	}
	return strings.Join(merged, "|")
}
