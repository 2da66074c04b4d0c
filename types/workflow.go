package types

// PolicyParseResult 政策智能解析工作流结果（扁平化）。主展示字段取自时间
// 校验后选出的主政策，all_hits 保留全部命中供 LLM 参考。
type PolicyParseResult struct {
	PolicyTitle       *string `json:"policy_title"`
	BenefitType       *string `json:"benefit_type"`
	BenefitAmount     *string `json:"benefit_amount"`
	Region            *string `json:"region"`
	EffectivePeriod   *string `json:"effective_period"`
	Conditions        *string `json:"conditions"`
	Procedures        *string `json:"procedures"`
	RequiredMaterials *string `json:"required_materials"`
	ClaimingPlatform  *string `json:"claiming_platform"`
	KbCitations       string  `json:"kb_citations"`
	AllHits           []Hit   `json:"all_hits,omitempty"`

	// 时间校验结果
	TimeNow      string   `json:"time_now,omitempty"`
	ActiveHits   []string `json:"active_hits,omitempty"`
	InactiveHits []string `json:"inactive_hits,omitempty"`

	Error string `json:"error,omitempty"`
}

// WelfareResult 个人福利计算工作流结果
type WelfareResult struct {
	SubsidyAmount     float64 `json:"subsidy_amount"`
	SubsidyBreakdown  string  `json:"subsidy_breakdown"`
	TotalBenefit      float64 `json:"total_benefit"`
	Constraints       *string `json:"constraints"`
	RequiredMaterials *string `json:"required_materials"`
	ClaimingPlatform  *string `json:"claiming_platform"`
	KbCitations       string  `json:"kb_citations"`
	AllHits           []Hit   `json:"all_hits,omitempty"`
	Error             string  `json:"error,omitempty"`
}

// RegionComparison 区域对比表格中的一行
type RegionComparison struct {
	Region           string  `json:"region"`
	PolicyTitle      string  `json:"policy_title"`
	BenefitType      *string `json:"benefit_type"`
	BenefitAmount    *string `json:"benefit_amount"`
	Conditions       *string `json:"conditions"`
	ClaimingPlatform *string `json:"claiming_platform"`
	EffectivePeriod  *string `json:"effective_period"`
}

// CompareResult 区域政策对比工作流结果
type CompareResult struct {
	RegionsCompared []string           `json:"regions_compared"`
	ComparisonTable []RegionComparison `json:"comparison_table"`
	Summary         string             `json:"summary"`
	KbCitations     string             `json:"kb_citations"`
	Error           string             `json:"error,omitempty"`
}
