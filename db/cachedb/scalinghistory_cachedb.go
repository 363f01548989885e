package cachedb

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"github.com/patrickmn/go-cache"

	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

// ScalingHistoryCacheDB keeps outcome records in memory for deployments
// without a scaling history database. Entries expire after the retention
// period.
type ScalingHistoryCacheDB struct {
	logger lager.Logger
	cache  *cache.Cache
	lock   sync.Mutex
}

func NewScalingHistoryCacheDB(retention time.Duration, logger lager.Logger) *ScalingHistoryCacheDB {
	return &ScalingHistoryCacheDB{
		logger: logger.Session("scaling-history-cachedb"),
		cache:  cache.New(retention, retention),
	}
}

func key(outcome *models.ScalingOutcome) string {
	return fmt.Sprintf("%s|%d", outcome.PrimaryName, outcome.Timestamp)
}

func (c *ScalingHistoryCacheDB) SaveScalingHistory(outcome *models.ScalingOutcome) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	stored := *outcome
	stored.Ops = slices.Clone(outcome.Ops)
	c.cache.SetDefault(key(outcome), &stored)
	return nil
}

func (c *ScalingHistoryCacheDB) RetrieveScalingHistories(primary string, start int64, end int64, orderType db.OrderType, includeAll bool) ([]*models.ScalingOutcome, error) {
	if end < 0 {
		end = time.Now().UnixNano()
	}

	histories := []*models.ScalingOutcome{}
	for _, item := range c.cache.Items() {
		outcome, ok := item.Object.(*models.ScalingOutcome)
		if !ok || outcome.PrimaryName != primary {
			continue
		}
		if outcome.Timestamp < start || outcome.Timestamp > end {
			continue
		}
		if !includeAll && outcome.Status == models.ScalingStatusIgnored {
			continue
		}
		copied := *outcome
		histories = append(histories, &copied)
	}

	slices.SortFunc(histories, func(a, b *models.ScalingOutcome) int {
		if orderType == db.DESC {
			return cmp.Compare(b.Timestamp, a.Timestamp)
		}
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	return histories, nil
}

func (c *ScalingHistoryCacheDB) PruneScalingHistories(before int64) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	pruned := 0
	for k, item := range c.cache.Items() {
		outcome, ok := item.Object.(*models.ScalingOutcome)
		if ok && outcome.Timestamp <= before {
			c.cache.Delete(k)
			pruned++
		}
	}
	c.logger.Debug("pruned-scaling-histories", lager.Data{"before": before, "count": pruned})
	return nil
}

func (c *ScalingHistoryCacheDB) Close() error {
	c.cache.Flush()
	return nil
}
