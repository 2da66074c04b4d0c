package types

// --- 请求/响应 ---

type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// QueryResponse 统一查询响应
type QueryResponse struct {
	Success     bool     `json:"success"`
	Intent      string   `json:"intent"`
	RawText     string   `json:"raw_text"`
	Entities    Entities `json:"entities"`
	Result      any      `json:"result"`
	FinalAnswer string   `json:"final_answer"`
	Citations   string   `json:"citations,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// --- 意图与实体 ---

// IntentResult LLM 意图解析输出（字段可空，JSON null 即未识别）
type IntentResult struct {
	Intent                string   `json:"intent"`
	EntityLocation        *string  `json:"entity_location"`
	EntityProduct         *string  `json:"entity_product"`
	EntityCompany         *string  `json:"entity_company"`
	EntityIndustry        *string  `json:"entity_industry"`
	EntityTime            *string  `json:"entity_time"`
	PricePaid             *float64 `json:"price_paid"`
	EnergyEfficiencyLevel *string  `json:"energy_efficiency_level"`
}

// Entities 工作流消费的实体集合。字符串空值表示缺失，价格需要区分 0 与缺失，
// 保留指针。
type Entities struct {
	Location    string   `json:"location,omitempty"`
	Product     string   `json:"product,omitempty"`
	Company     string   `json:"company,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	Time        string   `json:"time,omitempty"`
	PricePaid   *float64 `json:"price_paid,omitempty"`
	EnergyLevel string   `json:"energy_level,omitempty"`
}

// Entities 把意图解析输出转为工作流实体
func (r IntentResult) Entities() Entities {
	return Entities{
		Location:    Deref(r.EntityLocation),
		Product:     Deref(r.EntityProduct),
		Company:     Deref(r.EntityCompany),
		Industry:    Deref(r.EntityIndustry),
		Time:        Deref(r.EntityTime),
		PricePaid:   r.PricePaid,
		EnergyLevel: Deref(r.EnergyEfficiencyLevel),
	}
}

// Deref 解引用可空字符串，nil 视为空串
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ptr 取值的指针，用于构造可空字段
func Ptr[T any](v T) *T {
	return &v
}
