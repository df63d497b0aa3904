package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"bluecarbon/internal/ledger"
	"bluecarbon/internal/model"
	"bluecarbon/internal/ocr"
	"bluecarbon/internal/repository"
	repoMocks "bluecarbon/internal/repository/mocks"
	"bluecarbon/internal/storage"
	storeMocks "bluecarbon/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubExtractor returns a fixed tagged outcome.
type stubExtractor struct {
	outcome ocr.Outcome
}

func (s *stubExtractor) Extract(_ context.Context, _ *ocr.UploadedFile) ocr.Outcome {
	return s.outcome
}

func realOutcome() ocr.Outcome {
	docs := []model.ProcessedDocument{{
		Slot:       model.SlotProjectProposal,
		Name:       "Project Proposal / Plantation Plan",
		Fields:     model.FieldMap{"projectName": "Blue Carbon Mangrove Restoration"},
		Confidence: 0.92,
	}}
	return ocr.Outcome{
		Source: model.SourceReal,
		Result: model.OCRResult{
			Documents:         docs,
			Fingerprint:       ocr.Fingerprint(docs),
			OverallConfidence: 0.9,
		},
	}
}

func newTestService(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRunRepository, extractor Extractor) VerificationService {
	// Zero stage delays keep the staged sequence instantaneous under test.
	return NewVerificationService(mStore, mRepo, Options{
		Extractor:   extractor,
		Committer:   ledger.NewCommitter(0),
		StageDelays: make([]time.Duration, 4),
	})
}

func TestVerificationService_Process(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name             string
		originalFilename string
		contentType      string
		size             int64
		setupMocks       func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRunRepository) io.Reader
		wantErr          error
		wantErrMsg       string
	}{
		{
			name:             "happy path",
			originalFilename: "proposal.pdf",
			contentType:      "application/pdf",
			size:             4,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRunRepository) io.Reader {
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
				}), mock.Anything, storage.PutObjectOptions{
					Size:        4,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "proposal.pdf"},
				}).Return(storage.ObjectInfo{
					Key:         "documents/uuid.pdf",
					Size:        4,
					ContentType: "application/pdf",
				}, nil)

				mRepo.On("Create", ctx, mock.MatchedBy(func(run *model.VerificationRun) bool {
					return run.ID != "" &&
						run.StoragePath == "documents/uuid.pdf" &&
						run.Source == model.SourceReal &&
						run.Fingerprint != "" &&
						len(run.Result) > 0
				})).Return(&model.VerificationRun{ID: "gen-id", Source: model.SourceReal}, nil)

				return strings.NewReader("%PDF")
			},
		},
		{
			name:             "validation error - nil reader",
			originalFilename: "proposal.pdf",
			contentType:      "application/pdf",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRunRepository) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:             "validation error - wrong content type",
			originalFilename: "notes.txt",
			contentType:      "text/plain",
			size:             5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRunRepository) io.Reader {
				return strings.NewReader("hello")
			},
			wantErr: ocr.ErrInvalidFileType,
		},
		{
			name:             "storage error",
			originalFilename: "proposal.pdf",
			contentType:      "application/pdf",
			size:             4,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRunRepository) io.Reader {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return strings.NewReader("%PDF")
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:             "db error rolls back storage",
			originalFilename: "proposal.pdf",
			contentType:      "application/pdf",
			size:             4,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockRunRepository) io.Reader {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{Key: "documents/uuid.pdf", Size: 4, ContentType: "application/pdf"}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/")
				})).Return(nil)
				return strings.NewReader("%PDF")
			},
			wantErrMsg: "db save failed: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockRunRepository)
			r := tt.setupMocks(mStore, mRepo)

			svc := newTestService(mStore, mRepo, &stubExtractor{outcome: realOutcome()})
			out, err := svc.Process(ctx, r, tt.originalFilename, tt.contentType, tt.size)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out)
			case tt.wantErrMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.Nil(t, out)
			default:
				require.NoError(t, err)
				require.NotNil(t, out)
				assert.Equal(t, "gen-id", out.Run.ID)
				assert.Equal(t, model.SourceReal, out.Source)
				assert.Equal(t, realOutcome().Result.Fingerprint, out.Result.Fingerprint)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestVerificationService_ProcessCancelledRemovesObject(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockRunRepository)

	mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{Key: "documents/uuid.pdf"}, nil)
	mStore.On("Delete", mock.Anything, mock.Anything).Return(nil)

	svc := NewVerificationService(mStore, mRepo, Options{
		Extractor:   &stubExtractor{outcome: realOutcome()},
		Committer:   ledger.NewCommitter(0),
		StageDelays: []time.Duration{time.Hour, time.Hour, time.Hour, 0},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Process(ctx, strings.NewReader("%PDF"), "proposal.pdf", "application/pdf", 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	mStore.AssertCalled(t, "Delete", mock.Anything, "documents/uuid.pdf")
	mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVerificationService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockRunRepository)
	svc := newTestService(new(storeMocks.MockStorage), mRepo, &stubExtractor{})

	mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.VerificationRun]{
			Items: []model.VerificationRun{{ID: "r1"}},
			Total: 1,
		}, nil).Once()

	// Nonsense paging collapses to the defaults.
	res, err := svc.List(ctx, -3, -1)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 1, res.Total)
	mRepo.AssertExpectations(t)
}

func TestVerificationService_Get(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockRunRepository)
	svc := newTestService(new(storeMocks.MockStorage), mRepo, &stubExtractor{})

	_, err := svc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrIDRequired)

	mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows).Once()
	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	mRepo.On("FindByID", ctx, "r1").Return(&model.VerificationRun{ID: "r1"}, nil).Once()
	run, err := svc.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", run.ID)
	mRepo.AssertExpectations(t)
}

func TestVerificationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockRunRepository)
		svc := newTestService(mStore, mRepo, &stubExtractor{})

		mRepo.On("FindByID", ctx, "r1").
			Return(&model.VerificationRun{ID: "r1", StoragePath: "documents/uuid.pdf"}, nil)
		mStore.On("Delete", ctx, "documents/uuid.pdf").Return(nil)
		mRepo.On("Delete", ctx, "r1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "r1"))
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("storage failure keeps the row", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockRunRepository)
		svc := newTestService(mStore, mRepo, &stubExtractor{})

		mRepo.On("FindByID", ctx, "r1").
			Return(&model.VerificationRun{ID: "r1", StoragePath: "documents/uuid.pdf"}, nil)
		mStore.On("Delete", ctx, "documents/uuid.pdf").Return(errors.New("storage fail"))

		err := svc.Delete(ctx, "r1")
		require.Error(t, err)
		mRepo.AssertNotCalled(t, "Delete", ctx, "r1")
	})
}

func TestVerificationService_Commit(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockRunRepository)
	svc := newTestService(new(storeMocks.MockStorage), mRepo, &stubExtractor{})

	result := realOutcome().Result
	raw, err := json.Marshal(result)
	require.NoError(t, err)

	mRepo.On("FindByID", ctx, "r1").
		Return(&model.VerificationRun{ID: "r1", Result: raw}, nil).Once()

	rec, err := svc.Commit(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, result.Fingerprint, rec.DocumentHash)
	assert.Equal(t, len(result.Documents), rec.DocumentsCount)
	assert.Equal(t, "confirmed", rec.Status)

	mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows).Once()
	_, err = svc.Commit(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	mRepo.AssertExpectations(t)
}

func TestVerificationService_Overview(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockRunRepository)
	svc := newTestService(new(storeMocks.MockStorage), mRepo, &stubExtractor{})

	mRepo.On("CountBySource", ctx).Return(map[model.ExtractionSource]int{
		model.SourceReal:     7,
		model.SourceFallback: 3,
	}, nil)

	o, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, o.TotalRuns)
	assert.Equal(t, 7, o.RealExtractions)
	assert.Equal(t, 3, o.FallbackExtractions)
}

func TestVerificationService_Progress(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	mRepo := new(repoMocks.MockRunRepository)
	svc := newTestService(mStore, mRepo, &stubExtractor{outcome: realOutcome()})

	_, ok := svc.Progress("unknown")
	assert.False(t, ok)

	ctx := context.Background()
	mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{Key: "documents/uuid.pdf"}, nil)

	// Capture the generated run ID; progress is keyed by it, not the
	// repository's returned row.
	var created *model.VerificationRun
	mRepo.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.VerificationRun)
		}).
		Return(&model.VerificationRun{ID: "gen-id"}, nil)

	_, err := svc.Process(ctx, strings.NewReader("%PDF"), "proposal.pdf", "application/pdf", 4)
	require.NoError(t, err)
	require.NotNil(t, created)

	// After a completed run the last published stage is the terminal one.
	p, ok := svc.Progress(created.ID)
	require.True(t, ok)
	assert.Equal(t, 100, p.Percent)
}
