package model

// SlotID is the stable identifier of one of the four canonical document
// categories every extraction result must cover. Matching on slot IDs (rather
// than display names) keeps the normalizer deterministic even when the
// extraction API renames or reorders documents in its reply.
type SlotID string

const (
	SlotProjectProposal    SlotID = "project-proposal"
	SlotRegistrationCert   SlotID = "registration-certificate"
	SlotFieldDataSheet     SlotID = "field-data-sheet"
	SlotPhotographicReport SlotID = "photographic-report"
)

// SlotIDs lists the canonical slots in their fixed output order.
func SlotIDs() []SlotID {
	return []SlotID{
		SlotProjectProposal,
		SlotRegistrationCert,
		SlotFieldDataSheet,
		SlotPhotographicReport,
	}
}

// FieldMap maps an extracted field key (controlled vocabulary, e.g.
// "projectName", "gpsCoordinates") to its string value.
type FieldMap map[string]string

// ProcessedDocument is one normalized document slot of an extraction result.
// Immutable after creation.
type ProcessedDocument struct {
	Slot       SlotID   `json:"slot"`
	Name       string   `json:"name"`
	Fields     FieldMap `json:"fields"`
	Confidence float64  `json:"confidence"`
}

// OCRResult is the pipeline output: exactly four slots in canonical order,
// a display fingerprint, and the adapter-reported overall confidence.
// OverallConfidence is deliberately independent of the per-slot confidences;
// it is never recomputed as their mean.
type OCRResult struct {
	Documents         []ProcessedDocument `json:"documents"`
	Fingerprint       string              `json:"fingerprint"`
	OverallConfidence float64             `json:"overallConfidence"`
}

// ExtractionSource tags whether an OCRResult came from the extraction API or
// from the canned fallback data. The pipeline itself never fails; this tag is
// how callers tell the two apart.
type ExtractionSource string

const (
	SourceReal     ExtractionSource = "real"
	SourceFallback ExtractionSource = "fallback"
)
