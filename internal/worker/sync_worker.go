// Package worker mirrors persisted organization documents to the
// spreadsheet backend. It reacts to state sync messages and also runs a
// periodic full pass to recover from missed messages.
package worker

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Musyoka2020-eng/Contriflow/internal/amqp"
	"github.com/Musyoka2020-eng/Contriflow/internal/log"
	"github.com/Musyoka2020-eng/Contriflow/internal/sheets"
	"github.com/Musyoka2020-eng/Contriflow/internal/store"
)

// SyncWorker loads the current document and fans its years out to the
// mirror, a bounded number at a time.
type SyncWorker struct {
	store       store.Store
	mirror      sheets.YearMirror
	orgID       string
	concurrency int
	logger      *log.Logger

	mu          sync.Mutex
	lastVersion int64
}

func NewSyncWorker(s store.Store, mirror sheets.YearMirror, orgID string, concurrency int, logger *log.Logger) *SyncWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &SyncWorker{
		store:       s,
		mirror:      mirror,
		orgID:       orgID,
		concurrency: concurrency,
		logger:      logger.WithComponent(log.ComponentWorker),
	}
}

// HandleStateSync processes one sync message. Messages at or below the
// last mirrored version are skipped: the mirror always reflects the
// latest load, so replays have nothing to add.
func (w *SyncWorker) HandleStateSync(ctx context.Context, msg *amqp.StateSyncMessage) error {
	if msg.OrgID != w.orgID {
		w.logger.WarnContext(ctx, "Ignoring sync message for other organization",
			log.FieldOrg, msg.OrgID)
		return nil
	}

	w.mu.Lock()
	last := w.lastVersion
	w.mu.Unlock()
	if msg.Version <= last {
		w.logger.DebugContext(ctx, "Sync message already covered",
			log.FieldVersion, msg.Version,
			"mirrored_version", last)
		return nil
	}

	return w.SyncAll(ctx)
}

// SyncAll loads the document and mirrors every year concurrently. Also
// used as the startup pass and by the periodic ticker.
func (w *SyncWorker) SyncAll(ctx context.Context) error {
	doc, err := w.store.Load(ctx, w.orgID)
	if err == store.ErrNotFound {
		w.logger.InfoContext(ctx, "Nothing to mirror yet", log.FieldOrg, w.orgID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load document for mirror: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for year, data := range doc.Contributions {
		g.Go(func() error {
			if err := w.mirror.MirrorYear(gctx, year, data); err != nil {
				return fmt.Errorf("mirror year %s: %w", year, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w.mu.Lock()
	if doc.Version > w.lastVersion {
		w.lastVersion = doc.Version
	}
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Document mirrored",
		log.FieldOperation, log.OpSync,
		log.FieldVersion, doc.Version,
		"years", len(doc.Contributions))
	return nil
}

// LastVersion returns the most recently mirrored document version.
func (w *SyncWorker) LastVersion() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastVersion
}
