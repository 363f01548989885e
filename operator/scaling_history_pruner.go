package operator

import (
	"context"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"

	"github.com/cloudsql-replica-autoscaler/autoscaler/db"
)

var _ Operator = &ScalingHistoryPruner{}

type ScalingHistoryPruner struct {
	scalingHistoryDB db.ScalingHistoryDB
	cutoffDuration   time.Duration
	clock            clock.Clock
	logger           lager.Logger
}

func NewScalingHistoryPruner(scalingHistoryDB db.ScalingHistoryDB, cutoffDuration time.Duration, clock clock.Clock, logger lager.Logger) *ScalingHistoryPruner {
	return &ScalingHistoryPruner{
		scalingHistoryDB: scalingHistoryDB,
		cutoffDuration:   cutoffDuration,
		clock:            clock,
		logger:           logger.Session("scaling-history-pruner"),
	}
}

func (p *ScalingHistoryPruner) Operate(_ context.Context) {
	timestamp := p.clock.Now().Add(-p.cutoffDuration).UnixNano()
	p.logger.Debug("pruning-scaling-histories", lager.Data{"before": timestamp})

	if err := p.scalingHistoryDB.PruneScalingHistories(timestamp); err != nil {
		p.logger.Error("failed-prune-scaling-histories", err)
	}
}
