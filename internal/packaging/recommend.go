package packaging

import (
	"math"
	"time"

	"vacuum_packaging/internal/models"
)

// RecommendedSealingTime derives a sealing time from film thickness:
// round(thickness_mm * 1000) milliseconds. Unknown materials yield 0.
func RecommendedSealingTime(m models.PackagingMaterial) time.Duration {
	mm, ok := m.ThicknessMM()
	if !ok {
		return 0
	}
	return time.Duration(math.Round(mm*1000)) * time.Millisecond
}
