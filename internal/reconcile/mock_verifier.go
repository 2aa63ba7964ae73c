package reconcile

import (
	"context"
	"sync"

	"github.com/nstrayer/aisle-list/internal/model"
)

// MockVerifier is a test implementation of the service.Verifier
// interface with scriptable responses and call recording.
type MockVerifier struct {
	err      error
	respond  func(call int, items []model.Assignment) ([]model.Assignment, error)
	response []model.Assignment
	calls    [][]model.Assignment
	mu       sync.Mutex
}

// NewMockVerifier creates a mock verifier that echoes the input
// assignments until scripted otherwise.
func NewMockVerifier() *MockVerifier {
	return &MockVerifier{}
}

// Respond sets a canned response returned by every subsequent call.
func (m *MockVerifier) Respond(assignments []model.Assignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = assignments
	m.err = nil
	m.respond = nil
}

// Fail makes every subsequent call return the given error.
func (m *MockVerifier) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	m.respond = nil
}

// RespondWith installs a per-call response function. The call index is
// zero-based, letting tests script different behavior for racing
// requests.
func (m *MockVerifier) RespondWith(fn func(call int, items []model.Assignment) ([]model.Assignment, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.respond = fn
}

// VerifyCategories implements service.Verifier.
func (m *MockVerifier) VerifyCategories(_ context.Context, items []model.Assignment) ([]model.Assignment, error) {
	m.mu.Lock()
	call := len(m.calls)
	recorded := make([]model.Assignment, len(items))
	copy(recorded, items)
	m.calls = append(m.calls, recorded)
	err := m.err
	respond := m.respond
	response := m.response
	m.mu.Unlock()

	if respond != nil {
		return respond(call, items)
	}
	if err != nil {
		return nil, err
	}
	if response != nil {
		return response, nil
	}
	// Default: echo the input unchanged
	echoed := make([]model.Assignment, len(items))
	copy(echoed, items)
	return echoed, nil
}

// Calls returns the recorded requests in order.
func (m *MockVerifier) Calls() [][]model.Assignment {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([][]model.Assignment, len(m.calls))
	copy(calls, m.calls)
	return calls
}
