package ocr

import (
	"fmt"
	"strings"

	"bluecarbon/internal/model"
)

// buildExtractionPrompt composes the fixed instruction prompt enumerating the
// four target document slots and their expected field vocabulary, and asks
// for a JSON-shaped reply keyed by stable slot IDs.
func buildExtractionPrompt() string {
	var b strings.Builder

	b.WriteString("Analyze this PDF document which contains 4 different document types " +
		"for a Blue Carbon project. Extract information for each document type:\n\n")

	for i, slot := range model.SlotIDs() {
		fmt.Fprintf(&b, "%d. %s (slot id: %q):\n", i+1, strings.ToUpper(slotDisplayNames[slot]), slot)
		for _, field := range slotFieldVocabulary[slot] {
			fmt.Fprintf(&b, "   - %s\n", field)
		}
		b.WriteString("\n")
	}

	b.WriteString(`Return the response in JSON format:
{
  "documents": [
    {
      "slot": "project-proposal",
      "name": "Project Proposal / Plantation Plan",
      "fields": { extracted fields using the keys listed above },
      "confidence": number (0-1)
    }
    // ... one entry per document type, using the slot ids given above
  ],
  "overallConfidence": number (0-1)
}
Omit fields that are not present. Do not output null values.`)

	return b.String()
}
