package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSealingTimeFromMillis(t *testing.T) {
	if d, err := SealingTimeFromMillis(1200); err != nil || d != 1200*time.Millisecond {
		t.Fatalf("got %v, %v", d, err)
	}
	if d, err := SealingTimeFromMillis(maxSealingTimeMs); err != nil || d <= 0 {
		t.Fatalf("largest value should convert, got %v, %v", d, err)
	}
	for _, ms := range []int64{maxSealingTimeMs + 1, -maxSealingTimeMs - 1} {
		if _, err := SealingTimeFromMillis(ms); err == nil {
			t.Fatalf("%d: expected out of range error", ms)
		}
	}
}

func TestPackagingSettings_JSON(t *testing.T) {
	in := PackagingSettings{
		Material:            MaterialALPE,
		VacuumLevel:         VacuumHigh,
		SealingTemperatureC: 155,
		SealingTime:         150 * time.Millisecond,
		UseNitrogenFlushing: true,
	}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out PackagingSettings
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}

	overflow := []byte(`{"material":"AL_PE","vacuum_level":"HIGH","sealing_temperature_c":150,"sealing_time_ms":9223372036854776}`)
	if err := json.Unmarshal(overflow, &out); err == nil {
		t.Fatalf("expected overflow error, got %+v", out)
	}
}
