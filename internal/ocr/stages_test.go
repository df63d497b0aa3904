package ocr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStages(t *testing.T) {
	stages := DefaultStages()

	require.Len(t, stages, 4)
	assert.Equal(t, "Analyzing document structure", stages[0].Label)
	assert.Equal(t, 20, stages[0].Progress)
	assert.Equal(t, 50, stages[1].Progress)
	assert.Equal(t, 80, stages[2].Progress)
	// Terminal stage reports completion with no trailing delay.
	assert.Equal(t, 100, stages[3].Progress)
	assert.Equal(t, time.Duration(0), stages[3].Delay)
}

func TestSequencerRunsInOrder(t *testing.T) {
	var seen []Progress
	seq := NewSequencer(func(p Progress) { seen = append(seen, p) })

	stages := []Stage{
		{Label: "one", Progress: 20},
		{Label: "two", Progress: 50},
		{Label: "three", Progress: 100},
	}

	err := seq.Run(context.Background(), stages)
	require.NoError(t, err)

	require.Len(t, seen, 3)
	assert.Equal(t, Progress{Label: "one", Percent: 20}, seen[0])
	assert.Equal(t, Progress{Label: "two", Percent: 50}, seen[1])
	assert.Equal(t, Progress{Label: "three", Percent: 100}, seen[2])
}

func TestSequencerCancellation(t *testing.T) {
	var seen []Progress
	seq := NewSequencer(func(p Progress) { seen = append(seen, p) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stages := []Stage{
		{Label: "first", Progress: 20, Delay: time.Hour},
		{Label: "never", Progress: 100},
	}

	start := time.Now()
	err := seq.Run(ctx, stages)

	assert.ErrorIs(t, err, context.Canceled)
	// The run aborts during the first delay, not after it.
	assert.Less(t, time.Since(start), time.Second)
	require.Len(t, seen, 1)
	assert.Equal(t, "first", seen[0].Label)
}

func TestSequencerNilObserver(t *testing.T) {
	seq := NewSequencer(nil)
	err := seq.Run(context.Background(), []Stage{{Label: "only", Progress: 100}})
	assert.NoError(t, err)
}
