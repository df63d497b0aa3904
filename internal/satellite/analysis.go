// Package satellite fabricates satellite change-detection analysis for demo
// purposes. No imagery is fetched and no real change detection runs; values
// are drawn from plausible ranges the way the original demo generated them.
package satellite

import (
	"math/rand"
	"time"
)

// Analysis is a fabricated vegetation-change summary for one project area.
type Analysis struct {
	ProjectID              string  `json:"project_id"`
	CapturedAt             string  `json:"captured_at"`
	NDVIBefore             float64 `json:"ndvi_before"`
	NDVIAfter              float64 `json:"ndvi_after"`
	VegetationGainHectares float64 `json:"vegetation_gain_hectares"`
	ChangeConfidence       float64 `json:"change_confidence"`
	Verdict                string  `json:"verdict"`
}

// Analyze fabricates a change analysis for a project. The after-index always
// exceeds the before-index so the demo consistently shows growth.
func Analyze(projectID string) Analysis {
	before := 0.25 + rand.Float64()*0.15 // sparse cover
	after := before + 0.2 + rand.Float64()*0.25

	verdict := "Vegetation gain consistent with reported plantation activity."
	confidence := 0.8 + rand.Float64()*0.15
	if after-before < 0.25 {
		verdict = "Moderate vegetation gain detected; recommend field inspection."
	}

	return Analysis{
		ProjectID:              projectID,
		CapturedAt:             time.Now().UTC().Format(time.RFC3339),
		NDVIBefore:             round2(before),
		NDVIAfter:              round2(after),
		VegetationGainHectares: round2(5 + rand.Float64()*20),
		ChangeConfidence:       round2(confidence),
		Verdict:                verdict,
	}
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
