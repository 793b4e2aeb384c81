// Package convert orchestrates the binary-to-CSV conversion of DAQ run
// directories: decode, demultiplex, summarize, write.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shield-daq/shieldconv/pkg/demux"
	"github.com/shield-daq/shieldconv/pkg/export"
	"github.com/shield-daq/shieldconv/pkg/record"
	"github.com/shield-daq/shieldconv/pkg/session"
)

// ErrNoDataFiles marks a run directory with none of the three binary files.
var ErrNoDataFiles = errors.New("no data files found")

// Options controls a single run conversion.
type Options struct {
	OutputDir   string
	UnitID      string // overrides the unit parsed from the folder name
	HealthLabel session.HealthLabel
	Log         io.Writer // verbose progress; nil discards
}

func (o *Options) log(format string, args ...interface{}) {
	if o.Log != nil {
		fmt.Fprintf(o.Log, format+"\n", args...)
	}
}

// FileResult records the outcome of one binary file within a run.
type FileResult struct {
	Format  record.Format
	Records int
	Empty   bool
	Err     error
}

// RunResult is the outcome of converting one run directory.
type RunResult struct {
	RunDir      string
	Identity    session.RunIdentity
	Series      map[string]demux.Series
	Sessions    []session.SessionRecord
	OutputFiles map[string]string
	Files       []FileResult
	Warnings    []string
}

// FileErrors returns the decode/demux errors of the run's files, if any.
func (r *RunResult) FileErrors() []error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// DecodeFile runs the decode and demultiplex steps for one binary file,
// returning the per-sensor series and the record count. ErrEmpty passes
// through so callers can treat an empty file as a state, not a crash.
func DecodeFile(format record.Format, data []byte) ([]demux.Series, int, error) {
	switch format {
	case record.FormatFast:
		records, err := record.DecodeFast(data)
		if err != nil {
			return nil, 0, err
		}
		series, err := demux.SplitFast(records)
		return series, len(records), err
	case record.FormatMedium:
		records, err := record.DecodeMedium(data)
		if err != nil {
			return nil, 0, err
		}
		return []demux.Series{demux.Current(records)}, len(records), nil
	case record.FormatSlow:
		records, err := record.DecodeSlow(data)
		if err != nil {
			return nil, 0, err
		}
		series, err := demux.SplitSlow(records)
		return series, len(records), err
	}
	return nil, 0, fmt.Errorf("unknown format %q", format)
}

// ConvertRun converts one run directory. Missing files are skipped; a file
// that fails to decode is recorded in Files and the remaining files still
// convert. The returned error covers run-level failures only (unreadable
// directory, no data files, output write failures).
func ConvertRun(runDir string, opts Options) (*RunResult, error) {
	if opts.HealthLabel == "" {
		opts.HealthLabel = session.HealthUnknown
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "output"
	}

	result := &RunResult{
		RunDir:      runDir,
		Identity:    session.ParseRunIdentity(filepath.Base(runDir)),
		Series:      make(map[string]demux.Series),
		OutputFiles: make(map[string]string),
	}
	if opts.UnitID != "" {
		result.Identity.UnitID = opts.UnitID
	}

	if _, err := os.Stat(runDir); err != nil {
		return nil, fmt.Errorf("failed to access run directory: %w", err)
	}

	opts.log("Converting run: %s", filepath.Base(runDir))
	opts.log("  Unit ID: %s", result.Identity.UnitID)
	opts.log("  Session ID: %s", result.Identity.SessionID)

	startTime := resolveStartTime(runDir, result, &opts)

	runOutputDir := filepath.Join(opts.OutputDir, "data",
		strings.ToUpper(result.Identity.UnitID)+"_"+result.Identity.SessionID)

	var ordered []demux.Series
	present := 0
	for _, format := range record.Formats() {
		path := filepath.Join(runDir, format.FileName())
		data, err := os.ReadFile(path) // #nosec G304 -- path is inside the run directory being converted
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			present++
			result.Files = append(result.Files, FileResult{Format: format, Err: err})
			continue
		}
		present++

		opts.log("  Processing %s...", format.FileName())
		fr := FileResult{Format: format}
		series, n, err := DecodeFile(format, data)
		switch {
		case errors.Is(err, record.ErrEmpty):
			fr.Empty = true
			if format == record.FormatMedium {
				// the medium tier's channel is implicit, so an empty file
				// still yields a visible empty series
				series = []demux.Series{demux.Current(nil)}
			}
		case err != nil:
			fr.Err = err
			result.Files = append(result.Files, fr)
			opts.log("    Error: %v", err)
			continue
		}
		fr.Records = n
		result.Files = append(result.Files, fr)
		opts.log("    Read %d records", n)

		for _, s := range series {
			result.Series[s.Sensor] = s
			ordered = append(ordered, s)
			result.Sessions = append(result.Sessions,
				session.Summarize(s, format.RateHz(), result.Identity, startTime, opts.HealthLabel))
		}
	}

	if present == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDataFiles, runDir)
	}

	for _, s := range ordered {
		path, err := export.WriteSeriesFile(runOutputDir, s)
		if err != nil {
			return nil, err
		}
		result.OutputFiles[s.Sensor] = path
		opts.log("    Wrote %s: %d samples", filepath.Base(path), len(s.Samples))
	}

	return result, nil
}

// resolveStartTime merges the optional meta.json sidecar. A malformed sidecar
// is a warning; the conversion time becomes the session start.
func resolveStartTime(runDir string, result *RunResult, opts *Options) time.Time {
	startTime := time.Now().UTC()

	metaPath := filepath.Join(runDir, session.SidecarName)
	if _, err := os.Stat(metaPath); err != nil {
		return startTime
	}

	meta, err := session.LoadFirmwareMetadata(metaPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not load %s: %v", session.SidecarName, err))
		opts.log("  Warning: could not load %s: %v", session.SidecarName, err)
		return startTime
	}
	opts.log("  Loaded metadata: %s", meta.RunID)

	t, err := meta.StartTimeUTC()
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid start time in %s: %v", session.SidecarName, err))
		opts.log("  Warning: invalid start time in %s: %v", session.SidecarName, err)
		return startTime
	}
	return t
}
