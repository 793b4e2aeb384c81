package record

import (
	"encoding/binary"
	"math"
)

// Encoders produce byte-exact firmware layouts. They exist for building test
// fixtures and synthetic run directories; the converter itself only decodes.

// EncodeFast encodes records into the fast_data.bin layout.
func EncodeFast(records []FastRecord) []byte {
	data := make([]byte, len(records)*FastRecordSize)
	for i, r := range records {
		chunk := data[i*FastRecordSize:]
		binary.LittleEndian.PutUint32(chunk[offTimestamp:], r.TimestampMs)
		chunk[offSensorID] = r.SensorID
		binary.LittleEndian.PutUint32(chunk[offValue:], math.Float32bits(r.Value))
	}
	return data
}

// EncodeMedium encodes records into the medium_data.bin layout.
func EncodeMedium(records []MediumRecord) []byte {
	data := make([]byte, len(records)*MediumRecordSize)
	for i, r := range records {
		chunk := data[i*MediumRecordSize:]
		binary.LittleEndian.PutUint32(chunk[offTimestamp:], r.TimestampMs)
		binary.LittleEndian.PutUint32(chunk[offCurrent:], math.Float32bits(r.Current))
	}
	return data
}

// EncodeSlow encodes records into the slow_data.bin layout.
func EncodeSlow(records []SlowRecord) []byte {
	data := make([]byte, len(records)*SlowRecordSize)
	for i, r := range records {
		chunk := data[i*SlowRecordSize:]
		binary.LittleEndian.PutUint32(chunk[offTimestamp:], r.TimestampMs)
		chunk[offSensorID] = r.SensorID
		binary.LittleEndian.PutUint32(chunk[offValue:], math.Float32bits(r.Value))
	}
	return data
}
