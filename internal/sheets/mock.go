package sheets

import (
	"context"
	"sync"

	"github.com/nxtei/quality-draw/internal/model"
)

// MockWriter is a RecordWriter that remembers what it was asked to write.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, records []model.DrawRecord) error
	LastRecords    []model.DrawRecord
	WriteCallCount int
	mu             sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// WriteRecords implements service.RecordWriter.
func (m *MockWriter) WriteRecords(ctx context.Context, records []model.DrawRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastRecords = append([]model.DrawRecord(nil), records...)

	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, records)
	}
	return nil
}

// SetWriteError makes every later WriteRecords call return err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, []model.DrawRecord) error {
		return err
	}
}

// Calls returns how many times WriteRecords was called.
func (m *MockWriter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.WriteCallCount
}
