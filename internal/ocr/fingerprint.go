package ocr

import (
	"encoding/json"
	"strconv"
	"strings"

	"bluecarbon/internal/model"
)

const (
	fingerprintHexLen = 56
	fingerprintFiller = "a"
)

// Fingerprint derives the display digest for a normalized document set: a
// rolling multiply-shift checksum over the JSON serialization, reduced to a
// positive 32-bit integer, rendered in hex and padded with a constant filler
// to resemble a 64-character digest. It is a pure function of its input.
//
// This is NOT a cryptographic hash. Collisions are plausible and the padding
// is constant; the value exists for display and as a stand-in content
// identifier for the simulated ledger commit. It must never be treated as
// tamper-evident.
func Fingerprint(docs []model.ProcessedDocument) string {
	data, err := json.Marshal(docs)
	if err != nil {
		// Marshal of ProcessedDocument cannot fail; keep the function total anyway.
		data = []byte{}
	}

	var h int32
	for _, c := range data {
		h = ((h << 5) - h) + int32(c)
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}

	hex := strconv.FormatInt(v, 16)
	if len(hex) < 8 {
		hex = strings.Repeat("0", 8-len(hex)) + hex
	}
	return "0x" + hex + strings.Repeat(fingerprintFiller, fingerprintHexLen-len(hex))
}
