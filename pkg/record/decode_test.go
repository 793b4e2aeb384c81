package record

import (
	"errors"
	"math"
	"testing"
)

func TestDecodeFastKnownBytes(t *testing.T) {
	// timestamp 0x04030201, sensor 3, reserved bytes, value 1.5
	data := []byte{
		0x01, 0x02, 0x03, 0x04,
		0x03, 0x00, 0x00, 0x00,
		0x00, 0x00, 0xC0, 0x3F,
	}

	records, err := DecodeFast(data)
	if err != nil {
		t.Fatalf("DecodeFast() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("DecodeFast() returned %d records, want 1", len(records))
	}

	r := records[0]
	if r.TimestampMs != 0x04030201 {
		t.Errorf("TimestampMs = %#x, want 0x04030201", r.TimestampMs)
	}
	if r.SensorID != 3 {
		t.Errorf("SensorID = %d, want 3", r.SensorID)
	}
	if r.Value != 1.5 {
		t.Errorf("Value = %v, want 1.5", r.Value)
	}
}

func TestDecodeMediumKnownBytes(t *testing.T) {
	data := []byte{
		0xE8, 0x03, 0x00, 0x00, // timestamp 1000
		0x00, 0x00, 0x20, 0xC0, // current -2.5
	}

	records, err := DecodeMedium(data)
	if err != nil {
		t.Fatalf("DecodeMedium() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("DecodeMedium() returned %d records, want 1", len(records))
	}
	if records[0].TimestampMs != 1000 {
		t.Errorf("TimestampMs = %d, want 1000", records[0].TimestampMs)
	}
	if records[0].Current != -2.5 {
		t.Errorf("Current = %v, want -2.5", records[0].Current)
	}
}

func TestDecodeCountMatchesBufferLength(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		records int
	}{
		{"fast 100 records", FormatFast, 100},
		{"medium 250 records", FormatMedium, 250},
		{"slow 1 record", FormatSlow, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int
			switch tt.format {
			case FormatFast:
				in := make([]FastRecord, tt.records)
				out, err := DecodeFast(EncodeFast(in))
				if err != nil {
					t.Fatalf("decode error = %v", err)
				}
				got = len(out)
			case FormatMedium:
				in := make([]MediumRecord, tt.records)
				out, err := DecodeMedium(EncodeMedium(in))
				if err != nil {
					t.Fatalf("decode error = %v", err)
				}
				got = len(out)
			case FormatSlow:
				in := make([]SlowRecord, tt.records)
				out, err := DecodeSlow(EncodeSlow(in))
				if err != nil {
					t.Fatalf("decode error = %v", err)
				}
				got = len(out)
			}
			if got != tt.records {
				t.Errorf("decoded %d records, want %d", got, tt.records)
			}
		})
	}
}

func TestRoundTripFast(t *testing.T) {
	in := []FastRecord{
		{TimestampMs: 0, SensorID: 0, Value: 9.81},
		{TimestampMs: 1, SensorID: 1, Value: -0.25},
		{TimestampMs: 2, SensorID: 2, Value: float32(math.Pi)},
		{TimestampMs: 3, SensorID: 3, Value: 1},
		{TimestampMs: 4294967295, SensorID: 3, Value: 0},
	}

	out, err := DecodeFast(EncodeFast(in))
	if err != nil {
		t.Fatalf("DecodeFast() error = %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d records, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("record %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestRoundTripSlow(t *testing.T) {
	in := []SlowRecord{
		{TimestampMs: 20, SensorID: 0, Value: 101.325},
		{TimestampMs: 40, SensorID: 1, Value: 23.5},
	}

	out, err := DecodeSlow(EncodeSlow(in))
	if err != nil {
		t.Fatalf("DecodeSlow() error = %v", err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("record %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestDecodeEmptyBuffer(t *testing.T) {
	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			var err error
			switch f {
			case FormatFast:
				_, err = DecodeFast(nil)
			case FormatMedium:
				_, err = DecodeMedium(nil)
			case FormatSlow:
				_, err = DecodeSlow(nil)
			}
			if !errors.Is(err, ErrEmpty) {
				t.Errorf("decode of empty buffer: error = %v, want ErrEmpty", err)
			}
		})
	}
}

func TestDecodeMalformedBuffer(t *testing.T) {
	// 9 bytes is not a multiple of the 8-byte medium record
	_, err := DecodeMedium(make([]byte, 9))

	var malformed *MalformedFileError
	if !errors.As(err, &malformed) {
		t.Fatalf("DecodeMedium(9 bytes): error = %v, want *MalformedFileError", err)
	}
	if malformed.Size != 9 {
		t.Errorf("Size = %d, want 9", malformed.Size)
	}
	if malformed.RecordSize != MediumRecordSize {
		t.Errorf("RecordSize = %d, want %d", malformed.RecordSize, MediumRecordSize)
	}
}

func TestFormatAccessors(t *testing.T) {
	tests := []struct {
		format Format
		file   string
		size   int
		rate   int
	}{
		{FormatFast, "fast_data.bin", 12, 1000},
		{FormatMedium, "medium_data.bin", 8, 200},
		{FormatSlow, "slow_data.bin", 12, 50},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.FileName(); got != tt.file {
				t.Errorf("FileName() = %q, want %q", got, tt.file)
			}
			if got := tt.format.Size(); got != tt.size {
				t.Errorf("Size() = %d, want %d", got, tt.size)
			}
			if got := tt.format.RateHz(); got != tt.rate {
				t.Errorf("RateHz() = %d, want %d", got, tt.rate)
			}
		})
	}
}
