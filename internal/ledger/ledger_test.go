package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluecarbon/internal/model"
)

func sampleResult() model.OCRResult {
	return model.OCRResult{
		Documents: []model.ProcessedDocument{
			{Slot: model.SlotProjectProposal, Name: "Project Proposal / Plantation Plan"},
			{Slot: model.SlotRegistrationCert, Name: "NGO Registration Certificate"},
			{Slot: model.SlotFieldDataSheet, Name: "Plantation Log / Field Data Sheet"},
			{Slot: model.SlotPhotographicReport, Name: "Photographs / Drone Images Report"},
		},
		Fingerprint:       "0xdeadbeefaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		OverallConfidence: 0.9,
	}
}

func TestCommit(t *testing.T) {
	c := NewCommitter(0)

	rec, err := c.Commit(context.Background(), sampleResult())
	require.NoError(t, err)

	assert.Len(t, rec.Signature, 26)
	assert.GreaterOrEqual(t, rec.BlockHeight, int64(blockHeightBaseline))
	assert.Less(t, rec.BlockHeight, int64(blockHeightBaseline+1000))
	assert.Equal(t, nominalFee, rec.Fee)
	assert.Equal(t, statusConfirmed, rec.Status)
	assert.Equal(t, sampleResult().Fingerprint, rec.DocumentHash)
	assert.Equal(t, 4, rec.DocumentsCount)
	assert.Equal(t, fmt.Sprintf(explorerURLTemplate, rec.Signature), rec.ExplorerURL)

	_, err = time.Parse(time.RFC3339, rec.Timestamp)
	assert.NoError(t, err)
}

func TestCommitCancellation(t *testing.T) {
	c := NewCommitter(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	rec, err := c.Commit(ctx, sampleResult())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rec)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRandomSignatureAlphabet(t *testing.T) {
	sig := randomSignature(64)
	require.Len(t, sig, 64)
	for _, r := range sig {
		assert.Contains(t, signatureAlphabet, string(r))
	}
}
