package model

import (
	"encoding/json"
	"time"
)

// VerificationRun represents one completed document-processing run.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type VerificationRun struct {
	ID                string           `json:"id"`
	Filename          string           `json:"filename"`
	StoragePath       string           `json:"storage_path"`
	Size              int64            `json:"size"`
	ContentType       string           `json:"content_type"`
	Fingerprint       string           `json:"fingerprint"`
	OverallConfidence float64          `json:"overall_confidence"`
	Source            ExtractionSource `json:"source"`
	Result            json.RawMessage  `json:"result,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}
