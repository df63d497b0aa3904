package ocr

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"bluecarbon/internal/model"
)

// ContentGenerator is the outbound boundary to the document-understanding
// API: one prompt plus the raw file bytes in, one free-text reply out.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
}

// Outcome is the tagged result of an extraction run. Extract never fails:
// when the API call or its reply is unusable, the canned fallback result is
// returned with Source set to SourceFallback, so callers keep the ability to
// decide whether to trust the confidence values.
type Outcome struct {
	Source model.ExtractionSource `json:"source"`
	Result model.OCRResult        `json:"result"`
}

// Adapter wraps the extraction API call, lenient reply parsing, and fallback
// substitution into one always-succeeding operation. Callers must not assume
// Source=real just because Extract returned.
type Adapter struct {
	gen    ContentGenerator
	logger *slog.Logger
}

// NewAdapter constructs an Adapter. A nil logger falls back to slog.Default.
func NewAdapter(gen ContentGenerator, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{gen: gen, logger: logger}
}

// Extract issues one request to the extraction API for the uploaded file and
// normalizes whatever comes back. Network errors, replies without a JSON
// object, and schema-invalid payloads all degrade to the canned fallback
// result; none of them propagate to the caller.
func (a *Adapter) Extract(ctx context.Context, file *UploadedFile) Outcome {
	start := time.Now()

	reply, err := a.gen.Generate(ctx, buildExtractionPrompt(), file.Data, file.ContentType)
	if err != nil {
		a.logger.Error("ocr.extract.api_error",
			"file", file.Name,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Outcome{Source: model.SourceFallback, Result: fallbackResult()}
	}

	raw, ok := a.parseReply(reply)
	if !ok {
		a.logger.Warn("ocr.extract.unparseable_reply",
			"file", file.Name,
			"reply_bytes", len(reply),
		)
		return Outcome{Source: model.SourceFallback, Result: fallbackResult()}
	}

	result := normalize(raw)
	a.logger.Info("ocr.extract.done",
		"file", file.Name,
		"documents", len(result.Documents),
		"overall_confidence", result.OverallConfidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Outcome{Source: model.SourceReal, Result: result}
}

// parseReply extracts the first JSON object from the free-text reply,
// validates it against the minimal reply schema, and decodes it.
func (a *Adapter) parseReply(reply string) (*rawResult, bool) {
	obj, ok := firstJSONObject(reply)
	if !ok {
		return nil, false
	}

	var generic any
	if err := json.Unmarshal([]byte(obj), &generic); err != nil {
		return nil, false
	}
	if err := replySchema.Validate(generic); err != nil {
		a.logger.Warn("ocr.extract.schema_invalid", "error", err)
		return nil, false
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return nil, false
	}
	return &raw, true
}
