package judge

import (
	"context"
	"sync"
)

// MockJudgment is a canned result for the MockProvider.
type MockJudgment struct {
	Judgment *Judgment
	Err      error
}

// MockProvider is a deterministic Provider for testing. It returns
// canned judgments in FIFO order and records every judged text.
type MockProvider struct {
	mu        sync.Mutex
	judgments []MockJudgment
	Calls     []string
}

// NewMockProvider creates a MockProvider with the given canned judgments.
func NewMockProvider(judgments ...MockJudgment) *MockProvider {
	return &MockProvider{judgments: judgments}
}

// Judge returns the next canned judgment or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Judge(_ context.Context, text string) (*Judgment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, text)

	if len(m.judgments) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	next := m.judgments[0]
	m.judgments = m.judgments[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	return next.Judgment, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddJudgment appends a canned judgment to the queue.
func (m *MockProvider) AddJudgment(j MockJudgment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.judgments = append(m.judgments, j)
}

// CallCount returns the number of Judge calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
