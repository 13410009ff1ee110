package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockClient is a deterministic Client for tests. Responses are
// returned in the order queued; when the queue runs out the last
// response repeats.
type MockClient struct {
	mu        sync.Mutex
	responses []string
	index     int
	err       error
	requests  []Request
}

// NewMock returns an empty mock client.
func NewMock() *MockClient {
	return &MockClient{}
}

// SetResponse queues a single fixed response.
func (m *MockClient) SetResponse(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = []string{text}
	m.index = 0
}

// SetResponses queues a sequence of responses.
func (m *MockClient) SetResponses(texts ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = texts
	m.index = 0
}

// SetError makes every Complete call fail with err.
func (m *MockClient) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// LastRequest returns the most recent request, or a zero Request.
func (m *MockClient) LastRequest() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return Request{}
	}
	return m.requests[len(m.requests)-1]
}

// CallCount returns how many times Complete was invoked.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// ModelName identifies the mock in logs.
func (m *MockClient) ModelName() string {
	return "mock"
}

// Complete records the request and pops the next queued response.
func (m *MockClient) Complete(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return nil, fmt.Errorf("mock client has no responses queued")
	}
	text := m.responses[m.index]
	if m.index < len(m.responses)-1 {
		m.index++
	}
	return &Response{Text: text}, nil
}
