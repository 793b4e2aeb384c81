package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/shield-daq/shieldconv/pkg/record"
	"github.com/shield-daq/shieldconv/pkg/session"
)

// RunStatus reports one run within a batch conversion.
type RunStatus struct {
	Dir    string
	Result *RunResult // nil when the run failed outright
	Err    error
}

// Failed reports whether the run failed or had file-level errors.
func (s *RunStatus) Failed() bool {
	return s.Err != nil || (s.Result != nil && len(s.Result.FileErrors()) > 0)
}

// BatchResult aggregates a convert-all invocation.
type BatchResult struct {
	Runs     []RunStatus
	Sessions []session.SessionRecord
}

// FailedRuns counts runs that failed or had file errors.
func (b *BatchResult) FailedRuns() int {
	n := 0
	for i := range b.Runs {
		if b.Runs[i].Failed() {
			n++
		}
	}
	return n
}

// DiscoverRuns finds run directories under inputDir: any immediate
// subdirectory containing at least one of the three binary files. Results
// are sorted by name.
func DiscoverRuns(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var runs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(inputDir, entry.Name())
		for _, format := range record.Formats() {
			if _, err := os.Stat(filepath.Join(dir, format.FileName())); err == nil {
				runs = append(runs, dir)
				break
			}
		}
	}

	sort.Strings(runs)
	return runs, nil
}

// InputSize sums the byte sizes of the binary files across run directories,
// for output-space preflight checks.
func InputSize(runDirs []string) uint64 {
	var total uint64
	for _, dir := range runDirs {
		for _, format := range record.Formats() {
			if info, err := os.Stat(filepath.Join(dir, format.FileName())); err == nil {
				total += uint64(info.Size())
			}
		}
	}
	return total
}

// ConvertAll converts every run directory found under inputDir. Runs are
// independent, so up to workers of them convert concurrently; a failing run
// never aborts the batch. Sessions are returned in run-directory order.
func ConvertAll(inputDir string, opts Options, workers int) (*BatchResult, error) {
	runDirs, err := DiscoverRuns(inputDir)
	if err != nil {
		return nil, err
	}
	opts.log("Found %d run directories", len(runDirs))

	if workers < 1 {
		workers = 1
	}

	batch := &BatchResult{Runs: make([]RunStatus, len(runDirs))}

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, dir := range runDirs {
		wg.Add(1)
		go func(i int, dir string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			runOpts := opts
			if workers > 1 {
				// interleaved progress output is noise; per-run results are
				// reported by the caller instead
				runOpts.Log = nil
			}
			result, err := ConvertRun(dir, runOpts)
			batch.Runs[i] = RunStatus{Dir: dir, Result: result, Err: err}
		}(i, dir)
	}
	wg.Wait()

	for i := range batch.Runs {
		if batch.Runs[i].Result != nil {
			batch.Sessions = append(batch.Sessions, batch.Runs[i].Result.Sessions...)
		}
	}
	return batch, nil
}
