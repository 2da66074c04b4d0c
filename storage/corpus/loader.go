package corpus

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"quancetong/types"
	"quancetong/vars"
)

// Store 只读语料库访问层。政策主库按文件 mtime 缓存（显式缓存对象，随 Store
// 注入，不藏在函数状态里）；补充文档和企业库体量小，每次调用直接重读。
type Store struct {
	dataDir string
	logger  zerolog.Logger

	mu    sync.Mutex
	cache *policyCache
}

type policyCache struct {
	mtime time.Time
	items []types.PolicyRecord
}

func NewStore(dataDir string, logger zerolog.Logger) *Store {
	return &Store{dataDir: dataDir, logger: logger}
}

func (s *Store) policyFile() string {
	return filepath.Join(s.dataDir, "policies", "policies.jsonl")
}

// LoadPolicies 加载主政策库。文件缺失返回空列表，坏行记日志后跳过，
// 绝不让调用方因语料问题失败。返回的切片调用方只读。
func (s *Store) LoadPolicies() []types.PolicyRecord {
	path := s.policyFile()
	info, err := os.Stat(path)
	if err != nil {
		s.logger.Warn().Str("file", path).Msg("主政策文件不存在")
		return nil
	}

	s.mu.Lock()
	if s.cache != nil && s.cache.mtime.Equal(info.ModTime()) {
		items := s.cache.items
		s.mu.Unlock()
		return items
	}
	s.mu.Unlock()

	items := s.readPolicyLines(path)

	s.mu.Lock()
	s.cache = &policyCache{mtime: info.ModTime(), items: items}
	s.mu.Unlock()
	return items
}

func (s *Store) readPolicyLines(path string) []types.PolicyRecord {
	f, err := os.Open(path)
	if err != nil {
		s.logger.Warn().Err(err).Str("file", path).Msg("主政策文件打开失败")
		return nil
	}
	defer f.Close()

	var items []types.PolicyRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec types.PolicyRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			s.logger.Warn().Err(err).Msg("解析政策JSONL失败，跳过该行")
			continue
		}
		items = append(items, rec)
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn().Err(err).Str("file", path).Msg("读取主政策文件出错")
	}
	return items
}

// LoadSupplements 加载某行业的补充政策文档（目录下全部 Markdown），
// 正文截断到固定长度。未知行业或目录缺失返回空列表。
func (s *Store) LoadSupplements(industry string) []types.SupplementDocument {
	dirName, ok := vars.SupplementDirs[industry]
	if !ok {
		return nil
	}
	dir := filepath.Join(s.dataDir, "policies", dirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var docs []types.SupplementDocument
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			s.logger.Warn().Err(err).Str("file", entry.Name()).Msg("补充文档读取失败，跳过")
			continue
		}
		content := strings.TrimSpace(string(raw))
		if content == "" {
			continue
		}
		docs = append(docs, types.SupplementDocument{
			Title:   strings.TrimSuffix(entry.Name(), ".md"),
			Content: truncateRunes(content, vars.SupplementMaxRunes),
		})
	}
	return docs
}

// LoadCompanies 加载某行业的企业库。文件缺失返回空列表，坏行跳过。
func (s *Store) LoadCompanies(industry string) []types.CompanyRecord {
	fileName, ok := vars.CompanyFiles[industry]
	if !ok {
		return nil
	}
	path := filepath.Join(s.dataDir, "companies", fileName)
	f, err := os.Open(path)
	if err != nil {
		s.logger.Warn().Str("file", path).Msg("企业文件不存在")
		return nil
	}
	defer f.Close()

	var companies []types.CompanyRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec types.CompanyRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			s.logger.Warn().Err(err).Msg("解析企业数据失败，跳过该行")
			continue
		}
		companies = append(companies, rec)
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn().Err(err).Str("file", path).Msg("读取企业文件出错")
	}
	return companies
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
