package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/simpletemp/internal/client/client"
	"github.com/dmitrijs2005/simpletemp/internal/client/docstore"
	"github.com/dmitrijs2005/simpletemp/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/simpletemp/internal/dispatch"
	"github.com/dmitrijs2005/simpletemp/internal/logging"
)

// ReplicationType selects the directions of a pass.
type ReplicationType int

const (
	PushAndPull ReplicationType = iota
	Push
	Pull
)

func (t ReplicationType) String() string {
	switch t {
	case Push:
		return "push"
	case Pull:
		return "pull"
	case PushAndPull:
		return "push-and-pull"
	default:
		return fmt.Sprintf("ReplicationType(%d)", int(t))
	}
}

// ParseReplicationType accepts push, pull and push-and-pull.
func ParseReplicationType(s string) (ReplicationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "push":
		return Push, nil
	case "pull":
		return Pull, nil
	case "push-and-pull", "pushandpull", "":
		return PushAndPull, nil
	default:
		return 0, fmt.Errorf("unknown replication type %q", s)
	}
}

func (t ReplicationType) pushes() bool { return t == Push || t == PushAndPull }
func (t ReplicationType) pulls() bool  { return t == Pull || t == PushAndPull }

const DefaultBatchSize = 100

// ErrIncompletePush is returned when the peer accepts only part of a batch.
var ErrIncompletePush = errors.New("peer accepted fewer documents than sent")

// ReplicatorConfig configures a Replicator. Nil filters allow everything.
type ReplicatorConfig struct {
	Target     string
	Type       ReplicationType
	Continuous bool
	Interval   time.Duration

	// PassTimeout bounds a single pass; zero means no bound.
	PassTimeout time.Duration
	BatchSize   int

	PushFilter Filter
	PullFilter Filter
}

// Stats counts the documents moved in one pass.
type Stats struct {
	Pushed  int
	Pulled  int
	Skipped int
}

// Deps are the collaborators of a Replicator.
type Deps struct {
	Store     docstore.Store
	Meta      metadata.Repository
	Transport client.Transport
	// DB is the database queue; store access goes through it so it never
	// interleaves with other database work.
	DB *dispatch.Queue
	// Net, when set, is the network queue each pass started by Start runs
	// on, so scheduled passes never overlap on-demand ones.
	Net *dispatch.Queue
	Log logging.Logger
}

// Replicator runs replication passes.
type Replicator struct {
	cfg       ReplicatorConfig
	store     docstore.Store
	meta      metadata.Repository
	transport client.Transport
	db        *dispatch.Queue
	net       *dispatch.Queue
	log       logging.Logger
}

func NewReplicator(cfg ReplicatorConfig, deps Deps) *Replicator {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.PushFilter == nil {
		cfg.PushFilter = AllowAll
	}
	if cfg.PullFilter == nil {
		cfg.PullFilter = AllowAll
	}
	if cfg.Continuous && cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &Replicator{
		cfg:       cfg,
		store:     deps.Store,
		meta:      deps.Meta,
		transport: deps.Transport,
		db:        deps.DB,
		net:       deps.Net,
		log:       deps.Log.With("target", cfg.Target, "type", cfg.Type.String()),
	}
}

// Start runs one pass, or, when Continuous, a pass every Interval until ctx
// is done. A failed continuous pass is logged and retried next tick.
func (r *Replicator) Start(ctx context.Context) error {
	if err := r.scheduledPass(ctx); err != nil && !r.cfg.Continuous {
		return err
	}
	if !r.cfg.Continuous {
		return nil
	}

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_ = r.scheduledPass(ctx)
		}
	}
}

// scheduledPass runs RunOnce, on the network queue when one was given.
func (r *Replicator) scheduledPass(ctx context.Context) error {
	pass := func(ctx context.Context) error {
		_, err := r.RunOnce(ctx)
		return err
	}
	if r.net == nil {
		return pass(ctx)
	}
	return r.net.Do(ctx, pass)
}

// RunOnce performs a single pass.
func (r *Replicator) RunOnce(ctx context.Context) (Stats, error) {
	if r.cfg.PassTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.PassTimeout)
		defer cancel()
	}

	r.log.Debug(ctx, "replication started")

	var stats Stats
	var errs []error
	if r.cfg.Type.pushes() {
		if err := r.push(ctx, &stats); err != nil {
			errs = append(errs, fmt.Errorf("push error: %w", err))
		}
	}
	if r.cfg.Type.pulls() {
		if err := r.pull(ctx, &stats); err != nil {
			errs = append(errs, fmt.Errorf("pull error: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		r.log.Warn(ctx, "replication failed", "error", err,
			"pushed", stats.Pushed, "pulled", stats.Pulled)
		return stats, err
	}
	r.log.Info(ctx, "replication finished",
		"pushed", stats.Pushed, "pulled", stats.Pulled, "skipped", stats.Skipped)
	return stats, nil
}

func (r *Replicator) checkpointKey(direction string) string {
	return "sync." + direction + ".checkpoint@" + r.cfg.Target
}

func (r *Replicator) loadCheckpoint(ctx context.Context, direction string) (int64, error) {
	return dispatch.DoValue(ctx, r.db, func(ctx context.Context) (int64, error) {
		return metadata.GetInt64(ctx, r.meta, r.checkpointKey(direction))
	})
}

func (r *Replicator) push(ctx context.Context, stats *Stats) error {
	since, err := r.loadCheckpoint(ctx, "push")
	if err != nil {
		return err
	}

	for {
		changes, err := dispatch.DoValue(ctx, r.db, func(ctx context.Context) ([]*docstore.Document, error) {
			return r.store.Changes(ctx, since, r.cfg.BatchSize)
		})
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}

		batch := make([]docstore.Document, 0, len(changes))
		for _, d := range changes {
			if r.cfg.PushFilter(*d, flagsOf(*d)) {
				batch = append(batch, *d)
			} else {
				stats.Skipped++
			}
		}

		if len(batch) > 0 {
			n, err := r.transport.Push(ctx, batch)
			stats.Pushed += n
			if err != nil {
				return err
			}
			// The checkpoint stays put so the whole batch is offered again.
			if n < len(batch) {
				return fmt.Errorf("%w: %d of %d", ErrIncompletePush, n, len(batch))
			}
		}

		since = changes[len(changes)-1].Seq
		err = r.db.Do(ctx, func(ctx context.Context) error {
			return metadata.SetInt64(ctx, r.meta, r.checkpointKey("push"), since)
		})
		if err != nil {
			return err
		}

		if len(changes) < r.cfg.BatchSize {
			return nil
		}
	}
}

func (r *Replicator) pull(ctx context.Context, stats *Stats) error {
	since, err := r.loadCheckpoint(ctx, "pull")
	if err != nil {
		return err
	}

	for {
		docs, last, err := r.transport.Pull(ctx, since)
		if err != nil {
			return err
		}

		accepted := make([]docstore.Document, 0, len(docs))
		for _, d := range docs {
			if r.cfg.PullFilter(d, flagsOf(d)) {
				accepted = append(accepted, d)
			} else {
				stats.Skipped++
			}
		}

		err = r.db.Do(ctx, func(ctx context.Context) error {
			for i := range accepted {
				d := accepted[i]
				d.Seq = 0
				if err := r.store.Save(ctx, &d); err != nil {
					return err
				}
			}
			return metadata.SetInt64(ctx, r.meta, r.checkpointKey("pull"), last)
		})
		if err != nil {
			return err
		}
		stats.Pulled += len(accepted)

		if len(docs) == 0 || last <= since {
			return nil
		}
		since = last
	}
}
