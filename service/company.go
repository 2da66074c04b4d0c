package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"quancetong/logic/retrieval"
	"quancetong/storage/corpus"
	"quancetong/types"
	"quancetong/vars"
)

// 企业适配评分权重
const (
	innovationWeight     = 0.3
	expansionHighBonus   = 30
	expansionMediumBonus = 15
	channelScorePerItem  = 5
	channelScoreCap      = 20
)

// 信号灯阈值
const (
	signalGreenMin  = 70
	signalYellowMin = 40
)

// CompanyService 企业投资信号灯工作流：按行业加载企业库，评分排序出推荐名单
type CompanyService struct {
	store  *corpus.Store
	logger zerolog.Logger
}

func NewCompanyService(store *corpus.Store, logger zerolog.Logger) *CompanyService {
	return &CompanyService{store: store, logger: logger}
}

// ScoreCompany 单企业适配评分：创新分加权 + 扩张意愿加分 + 渠道加分
func ScoreCompany(rec types.CompanyRecord) float64 {
	score := rec.InnovationScore * innovationWeight
	switch rec.ExpansionWillingness {
	case "high":
		score += expansionHighBonus
	case "medium":
		score += expansionMediumBonus
	}
	channelScore := channelScorePerItem * len(rec.ExistingChannels)
	if channelScore > channelScoreCap {
		channelScore = channelScoreCap
	}
	return math.Round((score+float64(channelScore))*100) / 100
}

func (s *CompanyService) AnalyzeCompanySignal(ctx context.Context, entities types.Entities) types.CompanySignalResult {
	if entities.Industry == "" {
		return types.CompanySignalResult{
			InvestmentSignal: "黄灯",
			Error:            "缺少行业信息",
		}
	}

	companies := s.store.LoadCompanies(entities.Industry)
	if len(companies) == 0 {
		return types.CompanySignalResult{
			InvestmentSignal: "黄灯",
			Error:            fmt.Sprintf("%s行业暂无企业数据", entities.Industry),
		}
	}

	location := entities.Location
	if location == "" {
		location = vars.DefaultLocation
	}
	candidates := filterByLocation(companies, location)
	if len(candidates) == 0 {
		// 指定地点无匹配企业时回退到全行业
		candidates = companies
	}

	recommended := make([]types.RecommendedCompany, 0, len(candidates))
	for _, rec := range candidates {
		recommended = append(recommended, types.RecommendedCompany{
			CompanyName:          rec.Name,
			Industry:             rec.Industry,
			Location:             strings.TrimSpace(rec.City + " " + rec.Province),
			MainProducts:         strings.Join(rec.MainProducts, "、"),
			InnovationScore:      rec.InnovationScore,
			ExpansionWillingness: rec.ExpansionWillingness,
			TotalScore:           ScoreCompany(rec),
		})
	}

	sortByScore(recommended)
	if len(recommended) > vars.TopCompanies {
		recommended = recommended[:vars.TopCompanies]
	}

	// 信号灯只看推荐名单的均分，长尾弱企业不拉低判断
	var total float64
	for _, rc := range recommended {
		total += rc.TotalScore
	}
	avg := total / float64(len(recommended))

	return types.CompanySignalResult{
		RecommendedCompanies: recommended,
		IndustrySummary: fmt.Sprintf("%s行业共%d家企业，平均评分%.2f，推荐Top %d家",
			entities.Industry, len(companies), avg, len(recommended)),
		InvestmentSignal: signalFor(avg),
	}
}

func filterByLocation(companies []types.CompanyRecord, location string) []types.CompanyRecord {
	if location == "" {
		return companies
	}
	var matched []types.CompanyRecord
	for _, rec := range companies {
		if retrieval.MatchRegion(location, rec.Province, rec.City, "") {
			matched = append(matched, rec)
		}
	}
	return matched
}

func sortByScore(companies []types.RecommendedCompany) {
	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].TotalScore > companies[j].TotalScore
	})
}

func signalFor(avg float64) string {
	switch {
	case avg >= signalGreenMin:
		return "绿灯（推荐投资）"
	case avg >= signalYellowMin:
		return "黄灯（谨慎评估）"
	default:
		return "红灯（暂不建议）"
	}
}
