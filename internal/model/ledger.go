package model

// LedgerRecord is the fabricated transaction produced by the simulated ledger
// commit. The signature will not resolve on any real chain; the record exists
// for display and proof-download purposes only and is never reconciled with
// chain state.
type LedgerRecord struct {
	Signature      string  `json:"signature"`
	BlockHeight    int64   `json:"blockHeight"`
	Timestamp      string  `json:"timestamp"`
	Fee            float64 `json:"fee"`
	Status         string  `json:"status"`
	DocumentHash   string  `json:"documentHash"`
	DocumentsCount int     `json:"documentsCount"`
	ExplorerURL    string  `json:"explorerUrl,omitempty"`
}
