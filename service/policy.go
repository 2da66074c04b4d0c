package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"quancetong/logic/timecheck"
	"quancetong/types"
	"quancetong/vars"
)

// TimeSource 权威当前时间来源（外部时间服务）
type TimeSource interface {
	Now(ctx context.Context) (string, error)
}

// PolicyService 政策智能解析工作流：检索 → 有效期校验 → 主政策扁平化
type PolicyService struct {
	retriever PolicyRetriever
	timeAgent TimeSource
	logger    zerolog.Logger
}

func NewPolicyService(retriever PolicyRetriever, timeAgent TimeSource, logger zerolog.Logger) *PolicyService {
	return &PolicyService{retriever: retriever, timeAgent: timeAgent, logger: logger}
}

func (s *PolicyService) ParsePolicy(ctx context.Context, query string, entities types.Entities) types.PolicyParseResult {
	rr := s.retriever.RetrievePolicies(ctx, query, entities.Location, entities.Product, entities.Industry, vars.DefaultTopK)
	if len(rr.KbHits) == 0 {
		return types.PolicyParseResult{Error: "未找到相关政策", KbCitations: rr.KbCitations}
	}

	nowISO := s.currentTime(ctx)
	check := timecheck.ValidatePolicyPeriods(rr.KbHits, nowISO)
	active := timecheck.ActiveSet(check.ActiveHits)
	sorted := timecheck.SortByValidity(rr.KbHits, active)
	primary := timecheck.SelectPrimary(sorted, active)

	result := types.PolicyParseResult{
		KbCitations:  rr.KbCitations,
		AllHits:      sorted,
		TimeNow:      check.Now,
		ActiveHits:   check.ActiveHits,
		InactiveHits: check.InactiveHits,
	}
	if primary == nil {
		result.Error = "未找到相关政策"
		return result
	}

	result.PolicyTitle = types.Ptr(primary.Title)
	if primary.BenefitType != "" {
		result.BenefitType = types.Ptr(primary.BenefitType)
	}
	result.BenefitAmount = primary.BenefitAmount
	if region := formatRegion(primary); region != "" {
		result.Region = types.Ptr(region)
	}
	if period := formatPeriod(primary); period != "" {
		result.EffectivePeriod = types.Ptr(period)
	}
	result.Conditions = primary.Conditions
	result.Procedures = primary.Procedures
	result.RequiredMaterials = primary.RequiredMaterials
	if primary.ClaimingPlatform != "" {
		result.ClaimingPlatform = types.Ptr(primary.ClaimingPlatform)
	}
	return result
}

func (s *PolicyService) currentTime(ctx context.Context) string {
	if s.timeAgent != nil {
		if now, err := s.timeAgent.Now(ctx); err == nil && now != "" {
			return now
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("时间服务调用失败，使用本地时间")
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// formatRegion 市在前省在后，任一缺失只取另一个
func formatRegion(hit *types.Hit) string {
	city := types.Deref(hit.RegionCity)
	province := types.Deref(hit.RegionProvince)
	switch {
	case city != "" && province != "":
		return city + " " + province
	case city != "":
		return city
	default:
		return province
	}
}

// formatPeriod 起止日期都存在时才拼接有效期
func formatPeriod(hit *types.Hit) string {
	start := types.Deref(hit.EffectiveStart)
	end := types.Deref(hit.EffectiveEnd)
	if start == "" || end == "" {
		return ""
	}
	return strings.TrimSpace(start) + " 至 " + strings.TrimSpace(end)
}
