package categorizer

import (
	"context"
	"sync"
)

// MockEmbedder returns fixed vectors per text. Unknown texts get Default, or
// Err when it is set.
type MockEmbedder struct {
	mu      sync.Mutex
	Vectors map[string][]float32
	Default []float32
	Err     error
	// FailOn lists texts whose embedding fails even when Err is nil.
	FailOn map[string]error
	Calls  int
}

func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()

	if err, ok := m.FailOn[text]; ok {
		return nil, err
	}
	if v, ok := m.Vectors[text]; ok {
		return v, nil
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Default, nil
}
