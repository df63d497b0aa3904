package ocr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluecarbon/internal/model"
)

func TestFingerprintShape(t *testing.T) {
	docs := []model.ProcessedDocument{
		{
			Slot:       model.SlotProjectProposal,
			Name:       "Project Proposal / Plantation Plan",
			Fields:     model.FieldMap{"projectName": "Blue Carbon Mangrove Restoration"},
			Confidence: 0.9,
		},
	}

	fp := Fingerprint(docs)

	assert.True(t, strings.HasPrefix(fp, "0x"))
	// "0x" plus a fixed-width body: hex digits left-padded to at least 8,
	// then constant filler up to 56 characters total.
	assert.Len(t, fp, 2+fingerprintHexLen)
}

func TestFingerprintDeterministic(t *testing.T) {
	docs := normalize(nil).Documents

	first := Fingerprint(docs)
	second := Fingerprint(docs)
	require.Equal(t, first, second)
}

func TestFingerprintSensitiveToContent(t *testing.T) {
	base := normalize(nil).Documents

	changed := make([]model.ProcessedDocument, len(base))
	copy(changed, base)
	changed[0].Fields = model.FieldMap{"projectName": "Something Else Entirely"}

	assert.NotEqual(t, Fingerprint(base), Fingerprint(changed))
}

func TestFingerprintEmptyInput(t *testing.T) {
	fp := Fingerprint(nil)
	assert.True(t, strings.HasPrefix(fp, "0x"))
	assert.Len(t, fp, 2+fingerprintHexLen)
}
