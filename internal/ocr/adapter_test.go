package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluecarbon/internal/model"
)

// stubGenerator returns a fixed reply or error.
type stubGenerator struct {
	reply string
	err   error

	gotPrompt string
	gotMime   string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, _ []byte, mimeType string) (string, error) {
	s.gotPrompt = prompt
	s.gotMime = mimeType
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testFile() *UploadedFile {
	return &UploadedFile{
		Name:        "proposal.pdf",
		ContentType: "application/pdf",
		Size:        4,
		Data:        []byte("%PDF"),
	}
}

func TestAdapterExtractSuccess(t *testing.T) {
	gen := &stubGenerator{reply: "Here is the extraction:\n```json\n" + `{
		"documents": [
			{"slot": "project-proposal", "name": "Plan", "fields": {"projectName": "Delta"}, "confidence": 0.92}
		],
		"overallConfidence": 0.9
	}` + "\n```"}

	out := NewAdapter(gen, nil).Extract(context.Background(), testFile())

	assert.Equal(t, model.SourceReal, out.Source)
	require.Len(t, out.Result.Documents, 4)
	assert.Equal(t, "Delta", out.Result.Documents[0].Fields["projectName"])
	assert.Equal(t, 0.92, out.Result.Documents[0].Confidence)
	assert.Equal(t, 0.9, out.Result.OverallConfidence)
	assert.NotEmpty(t, out.Result.Fingerprint)
	assert.Equal(t, "application/pdf", gen.gotMime)
	assert.Contains(t, gen.gotPrompt, "project-proposal")
}

func TestAdapterExtractAPIFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connection refused")}

	out := NewAdapter(gen, nil).Extract(context.Background(), testFile())

	assert.Equal(t, model.SourceFallback, out.Source)
	require.Len(t, out.Result.Documents, 4)
	assert.Equal(t, fallbackOverallConfidence, out.Result.OverallConfidence)
}

func TestAdapterExtractUnparseableReply(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"no json at all", "I could not read the document, sorry."},
		{"schema invalid", `{"something": "else"}`},
		{"truncated object", `{"documents": [`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &stubGenerator{reply: tc.reply}
			out := NewAdapter(gen, nil).Extract(context.Background(), testFile())

			assert.Equal(t, model.SourceFallback, out.Source)
			assert.Equal(t, fallbackOverallConfidence, out.Result.OverallConfidence)
		})
	}
}

func TestAdapterMissingOverallConfidence(t *testing.T) {
	// A usable reply without the top-level confidence gets the slot default,
	// not the fallback constant.
	gen := &stubGenerator{reply: `{"documents": []}`}

	out := NewAdapter(gen, nil).Extract(context.Background(), testFile())

	assert.Equal(t, model.SourceReal, out.Source)
	assert.Equal(t, defaultOverallConfidence, out.Result.OverallConfidence)
}
