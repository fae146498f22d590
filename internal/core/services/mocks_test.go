package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// --- Mock implementations shared by service tests ---

// stubParser returns a fixed result and records the text it saw.
type stubParser struct {
	result domain.ParseResult
	seen   []string
}

func (p *stubParser) Parse(text string) domain.ParseResult {
	p.seen = append(p.seen, text)
	return p.result
}

// stubRegistry returns a fixed text or error for every raw syllabus.
type stubRegistry struct {
	text  *domain.SyllabusText
	err   error
	calls []*domain.RawSyllabus
}

func (r *stubRegistry) Extract(_ context.Context, raw *domain.RawSyllabus) (*domain.SyllabusText, error) {
	r.calls = append(r.calls, raw)
	if r.err != nil {
		return nil, r.err
	}
	out := *r.text
	out.URI = raw.URI
	return &out, nil
}

func (r *stubRegistry) Register(_ driven.Extractor) {}

func (r *stubRegistry) SupportedMIMETypes() []string {
	return []string{"text/plain"}
}

// countingNotifier counts change notifications.
type countingNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *countingNotifier) NotifyChanged() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
}

func (n *countingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

// stubSyncService implements driving.SyncService for scheduler tests.
type stubSyncService struct {
	mu        sync.Mutex
	syncCalls int
	report    *domain.MergeReport
	err       error
}

func (s *stubSyncService) NotifyChanged() {}

func (s *stubSyncService) Pull(_ context.Context) (*domain.MergeReport, error) {
	return s.report, s.err
}

func (s *stubSyncService) Push(_ context.Context) error { return s.err }

func (s *stubSyncService) Sync(_ context.Context) (*domain.MergeReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncCalls++
	if s.err != nil {
		return nil, s.err
	}
	if s.report == nil {
		return &domain.MergeReport{}, nil
	}
	return s.report, nil
}

func (s *stubSyncService) SyncCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncCalls
}

func (s *stubSyncService) HasChanges(_ context.Context) (bool, error) { return false, s.err }

func (s *stubSyncService) Status(_ context.Context) (*driving.SyncStatus, error) {
	return &driving.SyncStatus{}, nil
}

func (s *stubSyncService) Flush(_ context.Context) error { return nil }

// Ensure mocks implement interfaces
var (
	_ driven.SyllabusParser    = (*stubParser)(nil)
	_ driven.ExtractorRegistry = (*stubRegistry)(nil)
	_ driving.ChangeNotifier   = (*countingNotifier)(nil)
	_ driving.SyncService      = (*stubSyncService)(nil)
)
