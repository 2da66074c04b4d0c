package history

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Record 一次问答的会话记录（context_history.jsonl 每行一条）
type Record struct {
	ConversationID string `json:"conversation_id"`
	Timestamp      string `json:"timestamp"`
	Query          string `json:"query"`
	Intent         string `json:"intent"`
	Result         any    `json:"result"`
}

// Store 会话历史存储，JSONL 追加写
type Store struct {
	file   string
	mu     sync.Mutex
	logger zerolog.Logger
}

func NewStore(file string, logger zerolog.Logger) *Store {
	return &Store{file: file, logger: logger}
}

// Save 追加一条会话记录，失败只记日志不影响主流程
func (s *Store) Save(query, intent string, result any) {
	rec := Record{
		ConversationID: uuid.New().String(),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Query:          query,
		Intent:         intent,
		Result:         result,
	}
	line, err := json.Marshal(rec)
	if err != nil {
		s.logger.Warn().Err(err).Msg("会话记录序列化失败")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.logger.Warn().Err(err).Msg("会话历史文件打开失败")
		return
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		s.logger.Warn().Err(err).Msg("会话记录写入失败")
	}
}

// Recent 最近 limit 条记录，新的在前。文件缺失返回空，坏行跳过。
func (s *Store) Recent(limit int) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.file)
	if err != nil {
		return []Record{}
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var rec Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}

	// 倒序取最近的
	out := make([]Record, 0, limit)
	for i := len(records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, records[i])
	}
	return out
}
