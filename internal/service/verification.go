package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"bluecarbon/internal/ledger"
	"bluecarbon/internal/model"
	"bluecarbon/internal/ocr"
	"bluecarbon/internal/repository"
	"bluecarbon/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("verification run not found")
	ErrReaderNil  = errors.New("reader is nil")
)

// RunListResult is the service-level DTO for paginated verification runs.
type RunListResult struct {
	Items []model.VerificationRun `json:"data"`
	Total int                     `json:"total"`
}

// ProcessOutput bundles the persisted run with the tagged extraction outcome
// so callers can see whether the result is real or canned fallback data.
type ProcessOutput struct {
	Run    *model.VerificationRun `json:"run"`
	Source model.ExtractionSource `json:"source"`
	Result model.OCRResult        `json:"result"`
}

// SystemOverview aggregates stored run counts for the admin dashboard.
type SystemOverview struct {
	TotalRuns           int `json:"total_runs"`
	RealExtractions     int `json:"real_extractions"`
	FallbackExtractions int `json:"fallback_extractions"`
}

// Extractor is the pipeline's extraction boundary; ocr.Adapter implements it.
type Extractor interface {
	Extract(ctx context.Context, file *ocr.UploadedFile) ocr.Outcome
}

// VerificationService defines the use cases for document verification runs.
type VerificationService interface {
	// Process runs the full pipeline for one uploaded file: intake validation,
	// original upload to object storage, the staged progress sequence, the
	// extraction call, and run persistence. Storage is rolled back if the DB
	// save fails.
	Process(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*ProcessOutput, error)

	// List returns runs using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*RunListResult, error)

	// Get returns a single run by its ID.
	Get(ctx context.Context, id string) (*model.VerificationRun, error)

	// Delete removes a run by ID from both storage and repository.
	Delete(ctx context.Context, id string) error

	// Progress reports the last observed stage of a run, if one is known.
	Progress(runID string) (ocr.Progress, bool)

	// Commit performs the simulated ledger commit for a stored run's result.
	Commit(ctx context.Context, id string) (*model.LedgerRecord, error)

	// Overview aggregates run counts for the admin dashboard.
	Overview(ctx context.Context) (*SystemOverview, error)
}

// verificationService is a concrete implementation of VerificationService.
type verificationService struct {
	store     storage.Storage
	repo      repository.RunRepository
	extractor Extractor
	committer *ledger.Committer
	stages    []ocr.Stage
	metrics   *Metrics

	progress sync.Map // runID -> ocr.Progress
}

// Options carries the pipeline collaborators and tunables.
type Options struct {
	Extractor   Extractor
	Committer   *ledger.Committer
	StageDelays []time.Duration
	Metrics     *Metrics
}

// NewVerificationService constructs a new VerificationService.
func NewVerificationService(store storage.Storage, repo repository.RunRepository, opts Options) VerificationService {
	stages := ocr.DefaultStages()
	for i := range stages {
		if i < len(opts.StageDelays) {
			stages[i].Delay = opts.StageDelays[i]
		}
	}
	committer := opts.Committer
	if committer == nil {
		committer = ledger.NewCommitter(2 * time.Second)
	}
	return &verificationService{
		store:     store,
		repo:      repo,
		extractor: opts.Extractor,
		committer: committer,
		stages:    stages,
		metrics:   opts.Metrics,
	}
}

func (s *verificationService) Process(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*ProcessOutput, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	// Intake: validate the declared MIME type before anything else runs.
	intake := ocr.NewPDFIntake()
	file, err := intake.Accept(originalFilename, contentType, size, r)
	if err != nil {
		return nil, err
	}

	// Generate filename using UUID + extension
	ext := filepath.Ext(originalFilename)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("documents", genName))

	// Upload the original to object storage
	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(file.Data), storage.PutObjectOptions{
		Size:        file.Size,
		ContentType: file.ContentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	runID := uuid.New().String()

	// Drive the staged progress sequence. Cancelling ctx aborts the run and
	// removes the stored object; no timers outlive this call.
	seq := ocr.NewSequencer(func(p ocr.Progress) {
		s.progress.Store(runID, p)
	})
	if err := seq.Run(ctx, s.stages); err != nil {
		s.progress.Delete(runID)
		if delErr := s.store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			return nil, fmt.Errorf("run cancelled: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	// One extraction call per run; never fails, returns a tagged outcome.
	outcome := s.extractor.Extract(ctx, file)

	resultJSON, err := json.Marshal(outcome.Result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	run := &model.VerificationRun{
		ID:                runID,
		Filename:          genName,
		StoragePath:       objInfo.Key,
		Size:              objInfo.Size,
		ContentType:       objInfo.ContentType,
		Fingerprint:       outcome.Result.Fingerprint,
		OverallConfidence: outcome.Result.OverallConfidence,
		Source:            outcome.Source,
		Result:            resultJSON,
		CreatedAt:         time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, run)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RunsTotal.WithLabelValues(string(outcome.Source)).Inc()
	}

	return &ProcessOutput{Run: stored, Source: outcome.Source, Result: outcome.Result}, nil
}

// List returns paginated runs without exposing repository types.
func (s *verificationService) List(ctx context.Context, limit, offset int) (*RunListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &RunListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a run by ID.
func (s *verificationService) Get(ctx context.Context, id string) (*model.VerificationRun, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	run, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

// Delete removes a run from storage, then deletes its record.
func (s *verificationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	// Find the run to get its storage path
	run, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, run.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	s.progress.Delete(id)
	// Delete DB row (repository ignores missing row errors as per contract)
	return s.repo.Delete(ctx, id)
}

// Progress reports the last stage the sequencer published for a run.
func (s *verificationService) Progress(runID string) (ocr.Progress, bool) {
	v, ok := s.progress.Load(runID)
	if !ok {
		return ocr.Progress{}, false
	}
	return v.(ocr.Progress), true
}

// Commit performs the simulated ledger commit against a stored run's result.
func (s *verificationService) Commit(ctx context.Context, id string) (*model.LedgerRecord, error) {
	run, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var result model.OCRResult
	if err := json.Unmarshal(run.Result, &result); err != nil {
		return nil, fmt.Errorf("decode stored result: %w", err)
	}

	rec, err := s.committer.Commit(ctx, result)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.CommitsTotal.Inc()
	}
	return rec, nil
}

// Overview aggregates run counts by extraction source.
func (s *verificationService) Overview(ctx context.Context) (*SystemOverview, error) {
	counts, err := s.repo.CountBySource(ctx)
	if err != nil {
		return nil, err
	}
	o := &SystemOverview{
		RealExtractions:     counts[model.SourceReal],
		FallbackExtractions: counts[model.SourceFallback],
	}
	o.TotalRuns = o.RealExtractions + o.FallbackExtractions
	return o, nil
}
