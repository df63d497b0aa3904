package satellite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	a := Analyze("proj-42")

	assert.Equal(t, "proj-42", a.ProjectID)
	assert.Greater(t, a.NDVIAfter, a.NDVIBefore)
	assert.GreaterOrEqual(t, a.NDVIBefore, 0.25)
	assert.Greater(t, a.VegetationGainHectares, 0.0)
	assert.GreaterOrEqual(t, a.ChangeConfidence, 0.8)
	assert.LessOrEqual(t, a.ChangeConfidence, 0.95)
	assert.NotEmpty(t, a.Verdict)

	_, err := time.Parse(time.RFC3339, a.CapturedAt)
	require.NoError(t, err)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.33, round2(0.3333))
	assert.Equal(t, 2.68, round2(2.678))
}
