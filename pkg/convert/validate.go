package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shield-daq/shieldconv/pkg/record"
	"github.com/shield-daq/shieldconv/pkg/session"
)

// FileCheck is the validation outcome for one binary file.
type FileCheck struct {
	Format        record.Format
	Present       bool
	SizeBytes     int64
	Records       int
	TrailingBytes int
	Empty         bool
	Sensors       map[string]int // per-sensor sample counts
	Err           error
}

// Validation reports a run directory's integrity without writing output.
type Validation struct {
	Dir         string
	Identity    session.RunIdentity
	Files       []FileCheck
	MetaPresent bool
	Meta        *session.FirmwareMetadata
	MetaErr     error
}

// OK reports whether every present file decoded cleanly. Missing or empty
// files do not fail validation; a run with no data files at all does.
func (v *Validation) OK() bool {
	present := 0
	for i := range v.Files {
		if !v.Files[i].Present {
			continue
		}
		present++
		if v.Files[i].Err != nil {
			return false
		}
	}
	return present > 0
}

// ValidateRun decodes and demultiplexes every binary file in a run directory
// and reports record counts and errors. No output files are produced.
func ValidateRun(runDir string) (*Validation, error) {
	if _, err := os.Stat(runDir); err != nil {
		return nil, fmt.Errorf("failed to access run directory: %w", err)
	}

	v := &Validation{
		Dir:      runDir,
		Identity: session.ParseRunIdentity(filepath.Base(runDir)),
	}

	for _, format := range record.Formats() {
		check := FileCheck{Format: format}
		path := filepath.Join(runDir, format.FileName())

		data, err := os.ReadFile(path) // #nosec G304 -- path is inside the run directory being validated
		if err != nil {
			if !os.IsNotExist(err) {
				check.Present = true
				check.Err = err
			}
			v.Files = append(v.Files, check)
			continue
		}

		check.Present = true
		check.SizeBytes = int64(len(data))
		check.TrailingBytes = len(data) % format.Size()

		series, n, err := DecodeFile(format, data)
		switch {
		case errors.Is(err, record.ErrEmpty):
			check.Empty = true
		case err != nil:
			check.Err = err
		default:
			check.Records = n
			check.Sensors = make(map[string]int, len(series))
			for _, s := range series {
				check.Sensors[s.Sensor] = len(s.Samples)
			}
		}
		v.Files = append(v.Files, check)
	}

	metaPath := filepath.Join(runDir, session.SidecarName)
	if _, err := os.Stat(metaPath); err == nil {
		v.MetaPresent = true
		v.Meta, v.MetaErr = session.LoadFirmwareMetadata(metaPath)
	}

	return v, nil
}
