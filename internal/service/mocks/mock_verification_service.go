package mocks

import (
	"context"
	"io"

	"bluecarbon/internal/model"
	"bluecarbon/internal/ocr"
	"bluecarbon/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Process(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64) (*service.ProcessOutput, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProcessOutput), args.Error(1)
}

func (m *MockVerificationService) List(ctx context.Context, limit, offset int) (*service.RunListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RunListResult), args.Error(1)
}

func (m *MockVerificationService) Get(ctx context.Context, id string) (*model.VerificationRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VerificationRun), args.Error(1)
}

func (m *MockVerificationService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVerificationService) Progress(runID string) (ocr.Progress, bool) {
	args := m.Called(runID)
	return args.Get(0).(ocr.Progress), args.Bool(1)
}

func (m *MockVerificationService) Commit(ctx context.Context, id string) (*model.LedgerRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LedgerRecord), args.Error(1)
}

func (m *MockVerificationService) Overview(ctx context.Context) (*service.SystemOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SystemOverview), args.Error(1)
}
