package vars

import (
	"os"
)

// GetEnv 获取环境变量，如果不存在则返回默认值
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

const (
	// 模型名称
	NOMIC    = "nomic-embed-text"
	QWEN3B   = "qwen2.5:3b"
	QWENPLUS = "qwen-plus"
	TEXTEMB3 = "text-embedding-v3"

	// 意图类型
	IntentPolicyParse      = "policy_parse"
	IntentPersonalWelfare  = "personal_welfare"
	IntentRegionalCompare  = "regional_compare"
	IntentInvestmentSignal = "investment_signal"

	// 行业分类（封闭枚举）
	IndustryAppliance      = "appliance"
	IndustryDigital        = "digital"
	IndustryCar            = "car"
	IndustryRetailCatering = "retail_catering"

	// 检索参数
	DefaultTopK           = 5    // 政策解析/福利计算
	CompareTopK           = 3    // 区域对比每个地区
	SupplementFallbackMin = 3    // 主库命中少于该值时补充召回
	SupplementMaxRunes    = 2000 // 补充文档截断长度
	TopCompanies          = 10   // 企业信号灯推荐数量

	// 未指定地域时的企业筛选兜底
	DefaultLocation = "山东省"
)

// 环境变量配置（支持 Docker 部署，.env 由 main 加载）
var (
	// DashScope（OpenAI 兼容接口）
	DASHSCOPE_API_BASE    = GetEnv("DASHSCOPE_API_BASE_URL", "")
	DASHSCOPE_API_KEY     = GetEnv("DASHSCOPE_API_KEY", "")
	DASHSCOPE_CHAT_MODEL  = GetEnv("DASHSCOPE_CHAT_MODEL", QWENPLUS)
	DASHSCOPE_EMBED_MODEL = GetEnv("DASHSCOPE_EMBED_MODEL", TEXTEMB3)

	// OLLAMA（本地备选）
	OLLAMA_PATH = GetEnv("OLLAMA_PATH", "http://localhost:11434")

	// 数据与服务
	DATA_DIR        = GetEnv("DATA_DIR", "data")
	SERVER_ADDR     = GetEnv("SERVER_ADDR", ":8000")
	MCP_CONFIG_FILE = GetEnv("MCP_CONFIG_FILE", "mcp_servers.json")
)

// IndustryMarkers 行业 → campaign_id 标记子串
var IndustryMarkers = map[string][]string{
	IndustryAppliance:      {"APPLIANCE"},
	IndustryDigital:        {"DIGITAL"},
	IndustryCar:            {"CAR"},
	IndustryRetailCatering: {"RETAIL_CATERING"},
}

// SupplementDirs 行业 → 补充政策文档目录（data/policies 下）
var SupplementDirs = map[string]string{
	IndustryAppliance:      "家电补贴政策",
	IndustryDigital:        "数码补贴政策",
	IndustryCar:            "汽车补贴政策",
	IndustryRetailCatering: "零售餐饮补贴政策",
}

// CompanyFiles 行业 → 企业库文件（data/companies 下）
var CompanyFiles = map[string]string{
	IndustryAppliance:      "companies_appliance.jsonl",
	IndustryDigital:        "companies_digital.jsonl",
	IndustryCar:            "companies_auto.jsonl",
	IndustryRetailCatering: "companies_retail.jsonl",
}

// ProductSynonyms 产品同义词表。查询词本身始终参与匹配，这里只补充常见变体，
// 避免因数据源用词偏宽或偏窄而漏召回。
var ProductSynonyms = map[string][]string{
	"新能源汽车": {"新能源", "纯电动", "电动", "插电式混合动力", "混动"},
	"家电":    {"冰箱", "洗衣机", "电视", "空调", "热水器", "油烟机"},
	"空调":    {"挂机", "柜机", "中央空调"},
	"手机":    {"智能手机"},
	"数码":    {"手机", "平板", "智能手表", "手环"},
}

// DocumentLabels 申领材料编码 → 可读名称，未知编码原样透传
var DocumentLabels = map[string]string{
	"ID":                                "身份证明",
	"old_appliance_recycle_certificate": "旧机回收凭证",
	"new_purchase_invoice":              "购买发票",
	"bank_account":                      "银行账户",
}

// 提示词
const (
	INTENT_PROMPT = `你是一个政策咨询智能体的意图识别模块。你需要分析用户查询，识别意图并提取实体信息。

**意图类型（4种）**：
1. policy_parse（政策智能解析）：查询政策内容、申请条件、申请流程、截止时间等
2. personal_welfare（个人福利计算）：计算个人能领多少补贴，通常包含购买价格信息
3. regional_compare（区域政策对比）：对比不同地区的政策差异
4. investment_signal（企业投资信号灯）：评估企业适配性、招商推荐

**实体类型**：
- entity_location：地点（济南、青岛、山东省等），多地对比时用|分隔
- entity_product：产品（空调、手机、汽车等）
- entity_company：公司名称
- entity_industry：行业（appliance/digital/car/retail_catering）
- entity_time：时间（2025年、今年等）
- price_paid：购买价格（数值，单位：元）
- energy_efficiency_level：能效等级（一级能效、二级能效等）

**输出要求**：
必须严格按照JSON格式输出，不要有任何其他文字。格式如下：
{
    "intent": "意图类型",
    "entity_location": "地点或null",
    "entity_product": "产品或null",
    "entity_company": "公司或null",
    "entity_industry": "行业或null",
    "entity_time": "时间或null",
    "price_paid": 价格数值或null,
    "energy_efficiency_level": "能效等级或null"
}

**行业识别规则**：
- appliance（家电）：冰箱、洗衣机、电视、空调、热水器、油烟机等
- digital（数码）：手机、平板、智能手表、手环等
- car（汽车）：新能源汽车、燃油车、新车、乘用车等
- retail_catering（零售餐饮）：零售、餐饮、消费券等

**价格提取规则**：
- "花了3000元" -> 3000
- "2.5万" -> 25000
- 没有价格信息时返回null`

	WRITER_PROMPT = `你是一个政策咨询智能体的文本生成模块。你需要根据结构化数据，生成友好、专业、易懂的用户回答。

要求：
1. 语言友好，避免生硬的技术术语
2. 重点突出关键信息（补贴金额、申请条件、平台等）
3. 如果有引用来源，务必在末尾注明
4. 不要编造信息，严格基于提供的数据
5. 字数控制在200-300字`
)
