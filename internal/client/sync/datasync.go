package sync

import (
	"context"

	"github.com/dmitrijs2005/simpletemp/internal/dispatch"
	"github.com/dmitrijs2005/simpletemp/internal/logging"
)

// DataSync triggers one-shot report replication in the background.
type DataSync struct {
	replicator *Replicator
	net        *dispatch.Queue
	log        logging.Logger
}

// NewDataSync configures a replicator from base with ReportFilter in both
// directions. Target, type, schedule and timeouts come from base. Every pass
// runs on net.
func NewDataSync(base ReplicatorConfig, deps Deps, net *dispatch.Queue) *DataSync {
	cfg := base
	cfg.PushFilter = ReportFilter
	cfg.PullFilter = ReportFilter
	deps.Net = net
	return &DataSync{replicator: NewReplicator(cfg, deps), net: net, log: deps.Log}
}

// Start runs the replicator schedule: one pass, or a pass every Interval
// until ctx is done when Continuous is set.
func (d *DataSync) Start(ctx context.Context) error {
	return d.replicator.Start(ctx)
}

// Sync starts a pass on the network queue and returns immediately. The pass
// outlives ctx cancellation; PassTimeout bounds it.
func (d *DataSync) Sync(ctx context.Context) {
	d.log.Debug(ctx, "sync requested")
	d.net.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		_, err := d.replicator.RunOnce(ctx)
		return err
	})
}

// SyncNow runs a pass on the network queue and waits for it.
func (d *DataSync) SyncNow(ctx context.Context) (Stats, error) {
	return dispatch.DoValue(ctx, d.net, d.replicator.RunOnce)
}
