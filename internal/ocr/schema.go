package ocr

import "github.com/santhosh-tekuri/jsonschema/v5"

// replySchema is the minimal shape an extraction reply must satisfy before
// its documents are trusted at all. Anything stricter would reject usable
// partial replies; per-slot gaps are handled by the normalizer, not here.
const replySchemaJSON = `{
  "type": "object",
  "required": ["documents"],
  "properties": {
    "documents": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "slot": {"type": "string"},
          "name": {"type": "string"},
          "fields": {"type": "object"},
          "confidence": {"type": "number"}
        }
      }
    },
    "overallConfidence": {"type": "number"}
  }
}`

var replySchema = jsonschema.MustCompileString("extraction-reply.json", replySchemaJSON)
