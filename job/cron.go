package job

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"quancetong/logic/timecheck"
	"quancetong/storage/corpus"
	"quancetong/types"
)

// StartCronJob 每天凌晨 2 点巡检政策库，统计已过期政策数量
func StartCronJob(store *corpus.Store, logger zerolog.Logger) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 2 * * *", func() {
		policies := store.LoadPolicies()
		expired := countExpired(policies, time.Now().UTC())
		logger.Info().
			Int("total", len(policies)).
			Int("expired", expired).
			Int("active", len(policies)-expired).
			Msg("政策有效期巡检")
	})
	if err != nil {
		logger.Warn().Err(err).Msg("巡检任务注册失败")
		return c
	}

	c.Start()
	return c
}

func countExpired(policies []types.PolicyRecord, now time.Time) int {
	expired := 0
	for _, p := range policies {
		if p.EndDate == nil {
			continue
		}
		if end, ok := timecheck.ParseDate(*p.EndDate); ok && now.After(end) {
			expired++
		}
	}
	return expired
}
