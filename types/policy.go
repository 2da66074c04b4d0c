package types

// PolicyRecord 主政策库中的一条补贴活动（policies.jsonl 每行一条）。
// campaign_id 前缀编码行政区划（如 JN_ 市级、SD_ 省级），行业以标记子串编码。
type PolicyRecord struct {
	CampaignID   string       `json:"campaign_id"`
	Name         string       `json:"name"`
	CommonRules  *CommonRules `json:"common_rules,omitempty"`
	StartDate    *string      `json:"start_date,omitempty"`
	EndDate      *string      `json:"end_date,omitempty"`
	AuditProcess []string     `json:"audit_process,omitempty"`
	SourceURL    *string      `json:"source_url,omitempty"`
}

// CommonRules 补贴活动的通用规则
type CommonRules struct {
	SubsidyStandard    *SubsidyStandard    `json:"subsidy_standard,omitempty"`
	SubsidyProducts    []string            `json:"subsidy_products,omitempty"`
	QualificationRules *QualificationRules `json:"qualification_rules,omitempty"`
	RequiredDocuments  []string            `json:"required_documents,omitempty"`
	ClaimingPlatform   string              `json:"claiming_platform,omitempty"`
}

// SubsidyStandard 补贴标准：价格上限、满减档位、能效要求、限购数量
type SubsidyStandard struct {
	PriceCap                    *float64       `json:"price_cap,omitempty"`
	Brackets                    []Bracket      `json:"brackets,omitempty"`
	EnergyEfficiencyRequirement string         `json:"energy_efficiency_requirement,omitempty"`
	QuantityLimit               *QuantityLimit `json:"quantity_limit,omitempty"`
}

// Bracket 满减档位
type Bracket struct {
	Threshold float64 `json:"threshold"`
	Reduction float64 `json:"reduction"`
}

// QuantityLimit 限购数量
type QuantityLimit struct {
	PerCategory int `json:"per_category,omitempty"`
}

// QualificationRules 资格要求
type QualificationRules struct {
	RealNameAuth bool `json:"real_name_auth,omitempty"`
}

// SupplementDocument 行业补充政策文档（Markdown 全文），只做兜底填充，
// 不参与向量打分，score 恒为 0。
type SupplementDocument struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Hit 归一化后的检索命中。可空字段用指针表示缺失，绝不臆造取值。
type Hit struct {
	DocID             string   `json:"doc_id"`
	Title             string   `json:"title"`
	Summary           string   `json:"summary"`
	RegionProvince    *string  `json:"region_province"`
	RegionCity        *string  `json:"region_city"`
	EffectiveStart    *string  `json:"effective_start"`
	EffectiveEnd      *string  `json:"effective_end"`
	BenefitType       string   `json:"benefit_type"`
	BenefitAmount     *string  `json:"benefit_amount"`
	Conditions        *string  `json:"conditions"`
	Procedures        *string  `json:"procedures"`
	RequiredMaterials *string  `json:"required_materials"`
	ClaimingPlatform  string   `json:"claiming_platform"`
	SourceURL         *string  `json:"source_url"`
	Score             float64  `json:"score"`
}

// RetrievalResult RAG 检索统一返回（扁平化）
type RetrievalResult struct {
	KbHits      []Hit  `json:"kb_hits"`
	KbCitations string `json:"kb_citations"`
}
