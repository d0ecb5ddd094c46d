package testing

import (
	"sync"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
)

// MockValidator is a mock allocation validator for testing
type MockValidator struct {
	mu    sync.RWMutex
	err   error
	calls []domain.Allocation
}

// NewMockValidator creates a validator that accepts everything
func NewMockValidator() *MockValidator {
	return &MockValidator{}
}

// SetError sets the error to return
func (m *MockValidator) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Validate records the allocation and returns the configured error
func (m *MockValidator) Validate(a domain.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, a.Clone())
	return m.err
}

// Calls returns copies of every validated allocation
func (m *MockValidator) Calls() []domain.Allocation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Allocation, 0, len(m.calls))
	for _, a := range m.calls {
		out = append(out, a.Clone())
	}
	return out
}
