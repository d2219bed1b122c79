package ai

import (
	"context"
	"errors"
	"sync"

	"branchbook/models"
)

type scriptedCompleter struct {
	mu       sync.Mutex
	replies  []string
	errs     []error
	block    bool
	requests []models.CompletionRequest
}

func (s *scriptedCompleter) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	s.mu.Lock()
	idx := len(s.requests)
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	if idx < len(s.replies) {
		return s.replies[idx], nil
	}
	return "", errors.New("no scripted reply")
}

func (s *scriptedCompleter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

type stubBranches struct {
	branches []models.Branch
	err      error
	panics   bool
}

func (s *stubBranches) List(_ context.Context, limit int) ([]models.Branch, error) {
	if s.panics {
		panic("branch store exploded")
	}
	if s.err != nil {
		return nil, s.err
	}
	if limit > 0 && len(s.branches) > limit {
		return s.branches[:limit], nil
	}
	return s.branches, nil
}

type stubWeather struct {
	weather *models.Weather
	err     error
	calls   int
}

func (s *stubWeather) Current(context.Context) (*models.Weather, error) {
	s.calls++
	return s.weather, s.err
}

type memoryHistory struct {
	turns map[string][]models.Turn
}

func (m *memoryHistory) Recent(_ context.Context, sessionID string, limit int) ([]models.Turn, error) {
	t := m.turns[sessionID]
	if len(t) > limit {
		t = t[len(t)-limit:]
	}
	return t, nil
}

func (m *memoryHistory) Push(_ context.Context, sessionID string, turns ...models.Turn) error {
	if m.turns == nil {
		m.turns = map[string][]models.Turn{}
	}
	m.turns[sessionID] = append(m.turns[sessionID], turns...)
	return nil
}
