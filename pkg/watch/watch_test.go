package watch

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/shield-daq/shieldconv/pkg/convert"
	"github.com/shield-daq/shieldconv/pkg/index"
	"github.com/shield-daq/shieldconv/pkg/record"
)

func TestScanConvertsNewRunsOnce(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()

	runDir := filepath.Join(input, "RUN_001")
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		t.Fatal(err)
	}
	data := record.EncodeSlow([]record.SlowRecord{
		{TimestampMs: 0, SensorID: 0, Value: 101.3},
		{TimestampMs: 20, SensorID: 1, Value: 23.5},
	})
	if err := os.WriteFile(filepath.Join(runDir, "slow_data.bin"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := index.Open(filepath.Join(t.TempDir(), "shieldconv.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	r := NewRunner(input, convert.Options{OutputDir: output}, db, log.New(os.Stderr, "", 0))
	r.scan()

	if _, err := os.Stat(filepath.Join(output, "data", "UNIT_0001_RUN_001", "pressure.csv")); err != nil {
		t.Errorf("pressure.csv not written: %v", err)
	}

	n, err := db.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("indexed %d sessions, want 2", n)
	}

	// a second scan must skip the already-indexed run
	r.scan()
	n, err = db.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("second scan re-indexed: %d sessions, want 2", n)
	}
}

func TestStartRejectsBadCronExpr(t *testing.T) {
	db, err := index.Open(filepath.Join(t.TempDir(), "shieldconv.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	r := NewRunner(t.TempDir(), convert.Options{OutputDir: t.TempDir()}, db, log.New(os.Stderr, "", 0))
	if err := r.Start("not a cron expr"); err == nil {
		t.Error("Start() expected error for invalid cron expression")
	}
}
