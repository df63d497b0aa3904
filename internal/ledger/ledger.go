package ledger

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"bluecarbon/internal/model"
)

const (
	blockHeightBaseline = 298_745_123
	nominalFee          = 0.000005
	statusConfirmed     = "confirmed"
	signatureAlphabet   = "abcdefghijklmnopqrstuvwxyz0123456789"

	// explorerURLTemplate is display-only; the fabricated signature will not
	// resolve on the real explorer.
	explorerURLTemplate = "https://explorer.solana.com/tx/%s"
)

// Committer produces fabricated transaction records representing "storing" a
// document fingerprint on chain. There is no network I/O and no retry; the
// only failure mode is the caller cancelling the artificial delay.
type Committer struct {
	delay time.Duration
}

// NewCommitter builds a committer with the given artificial delay.
func NewCommitter(delay time.Duration) *Committer {
	return &Committer{delay: delay}
}

// Commit fabricates a confirmed transaction record for the result after the
// configured delay. Cancelling ctx aborts the wait and no record is produced.
func (c *Committer) Commit(ctx context.Context, result model.OCRResult) (*model.LedgerRecord, error) {
	if c.delay > 0 {
		t := time.NewTimer(c.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	sig := randomSignature(26)
	return &model.LedgerRecord{
		Signature:      sig,
		BlockHeight:    blockHeightBaseline + rand.Int63n(1000),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Fee:            nominalFee,
		Status:         statusConfirmed,
		DocumentHash:   result.Fingerprint,
		DocumentsCount: len(result.Documents),
		ExplorerURL:    fmt.Sprintf(explorerURLTemplate, sig),
	}, nil
}

func randomSignature(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = signatureAlphabet[rand.Intn(len(signatureAlphabet))]
	}
	return string(b)
}
