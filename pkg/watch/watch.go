// Package watch periodically scans a drop directory (typically an SD card
// mount) and converts any run directory not yet present in the session index.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shield-daq/shieldconv/pkg/convert"
	"github.com/shield-daq/shieldconv/pkg/export"
	"github.com/shield-daq/shieldconv/pkg/index"
	"github.com/shield-daq/shieldconv/pkg/session"
)

// Runner drives scheduled conversion scans.
type Runner struct {
	cron     *cron.Cron
	inputDir string
	opts     convert.Options
	db       *index.DB
	logger   *log.Logger
	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewRunner creates a runner over one input directory.
func NewRunner(inputDir string, opts convert.Options, db *index.DB, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "output"
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
		inputDir: inputDir,
		opts:     opts,
		db:       db,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start registers the scan on the cron expression, runs one scan immediately,
// and starts the scheduler.
func (r *Runner) Start(cronExpr string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(cronExpr); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	if _, err := r.cron.AddFunc(cronExpr, r.scan); err != nil {
		return fmt.Errorf("failed to schedule scan: %w", err)
	}

	r.logger.Printf("Watching %s (schedule %q)", r.inputDir, cronExpr)
	r.scan()
	r.cron.Start()
	return nil
}

// Stop stops the scheduler and waits briefly for a running scan.
func (r *Runner) Stop() {
	r.cancel()
	ctx := r.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(time.Minute):
		r.logger.Println("Timeout waiting for scan to complete")
	}
	r.logger.Println("Watcher stopped")
}

// scan converts every unindexed run directory found under the input dir.
func (r *Runner) scan() {
	r.mu.Lock()
	defer r.mu.Unlock()

	select {
	case <-r.ctx.Done():
		return
	default:
	}

	runDirs, err := convert.DiscoverRuns(r.inputDir)
	if err != nil {
		r.logger.Printf("Scan failed: %v", err)
		return
	}

	converted := 0
	for _, dir := range runDirs {
		id := session.ParseRunIdentity(filepath.Base(dir))
		if r.opts.UnitID != "" {
			id.UnitID = r.opts.UnitID
		}

		done, err := r.db.Has(id.SessionID, id.UnitID)
		if err != nil {
			r.logger.Printf("Index lookup failed for %s: %v", filepath.Base(dir), err)
			continue
		}
		if done {
			continue
		}

		result, err := convert.ConvertRun(dir, r.opts)
		if err != nil {
			r.logger.Printf("Error converting %s: %v", filepath.Base(dir), err)
			continue
		}
		for _, ferr := range result.FileErrors() {
			r.logger.Printf("Error in %s: %v", filepath.Base(dir), ferr)
		}

		sessionsCSV := filepath.Join(r.opts.OutputDir, "metadata", "sessions", "sessions.csv")
		if err := export.AppendSessionsFile(sessionsCSV, result.Sessions); err != nil {
			r.logger.Printf("Error writing sessions metadata: %v", err)
			continue
		}
		if err := r.db.UpsertAll(result.Sessions); err != nil {
			r.logger.Printf("Error indexing %s: %v", filepath.Base(dir), err)
			continue
		}

		r.logger.Printf("Converted %s: %d sensor files", filepath.Base(dir), len(result.OutputFiles))
		converted++
	}

	if converted > 0 {
		r.logger.Printf("Scan complete: %d new runs converted", converted)
	}
}
