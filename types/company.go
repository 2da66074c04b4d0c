package types

// CompanyRecord 企业库中的一条企业记录（companies_*.jsonl 每行一条）
type CompanyRecord struct {
	Name                 string   `json:"name"`
	City                 string   `json:"city"`
	Province             string   `json:"province"`
	Industry             string   `json:"industry"`
	MainProducts         []string `json:"main_products,omitempty"`
	InnovationScore      float64  `json:"innovation_score"`
	RegisteredCapitalWan float64  `json:"registered_capital_wan,omitempty"`
	AgeYears             float64  `json:"age_years,omitempty"`
	ExpansionWillingness string   `json:"expansion_willingness"` // high/medium/low/unknown
	ExistingChannels     []string `json:"existing_channels,omitempty"`
}

// RecommendedCompany 推荐企业（评分为本次查询派生，不回写企业库）
type RecommendedCompany struct {
	CompanyName          string  `json:"company_name"`
	Industry             string  `json:"industry"`
	Location             string  `json:"location"`
	MainProducts         string  `json:"main_products"`
	InnovationScore      float64 `json:"innovation_score"`
	ExpansionWillingness string  `json:"expansion_willingness"`
	TotalScore           float64 `json:"total_score"`
}

// CompanySignalResult 企业投资信号灯工作流结果
type CompanySignalResult struct {
	RecommendedCompanies []RecommendedCompany `json:"recommended_companies"`
	IndustrySummary      string               `json:"industry_summary"`
	InvestmentSignal     string               `json:"investment_signal"` // 绿灯/黄灯/红灯
	KbCitations          string               `json:"kb_citations"`
	Error                string               `json:"error,omitempty"`
}
