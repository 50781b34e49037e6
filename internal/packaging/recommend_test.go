package packaging

import (
	"testing"
	"time"

	"vacuum_packaging/internal/models"
)

func TestRecommendedSealingTime(t *testing.T) {
	want := map[models.PackagingMaterial]time.Duration{
		models.MaterialPAPE:        90 * time.Millisecond,
		models.MaterialPETPE:       120 * time.Millisecond,
		models.MaterialPVDC:        80 * time.Millisecond,
		models.MaterialALPE:        150 * time.Millisecond,
		models.MaterialHighBarrier: 180 * time.Millisecond,
	}
	for _, m := range models.Materials() {
		got := RecommendedSealingTime(m)
		if got != want[m] {
			t.Errorf("%s: got %v, want %v", m, got, want[m])
		}
		// deterministic
		if again := RecommendedSealingTime(m); again != got {
			t.Errorf("%s: not deterministic (%v vs %v)", m, got, again)
		}
	}
	if got := RecommendedSealingTime("PAPER"); got != 0 {
		t.Errorf("unknown material: got %v, want 0", got)
	}
	if got := NewController().RecommendedSealingTime(models.MaterialALPE); got != 150*time.Millisecond {
		t.Errorf("controller helper: got %v", got)
	}
}
