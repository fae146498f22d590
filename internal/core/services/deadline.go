package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/samber/lo"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// Ensure DeadlineService implements the interface.
var _ driving.DeadlineService = (*DeadlineService)(nil)

// monthDayYear matches "March 5 2025", which needs a comma before the
// date parser accepts it.
var monthDayYear = regexp.MustCompile(`^([A-Za-z]+\.?\s+\d{1,2})\s+(\d{4})$`)

// DeadlineService lists assignment due dates across calculators.
type DeadlineService struct {
	calcs driven.CalculatorStore
	loc   *time.Location
}

// NewDeadlineService creates a deadline service that reads dates in
// the local time zone.
func NewDeadlineService(calcs driven.CalculatorStore) *DeadlineService {
	return &DeadlineService{calcs: calcs, loc: time.Local}
}

// Upcoming returns ungraded assignments due on or after the day of from,
// soonest first, followed by those whose dates could not be read.
// A zero from includes every dated assignment.
func (s *DeadlineService) Upcoming(ctx context.Context, from time.Time, limit int) ([]domain.Deadline, error) {
	calcs, err := s.calcs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list calculators: %w", err)
	}

	var dated, undated []domain.Deadline
	cutoff := startOfDay(from.In(s.loc))
	for _, c := range calcs {
		for _, a := range c.Assignments {
			if strings.TrimSpace(a.DueDate) == "" || strings.TrimSpace(a.Grade) != "" {
				continue
			}
			d := domain.Deadline{
				CalculatorID:   c.ID,
				CalculatorName: c.Name,
				Assignment:     a,
			}
			due, ok := s.parseDue(a.DueDate)
			if !ok {
				undated = append(undated, d)
				continue
			}
			if !from.IsZero() && due.Before(cutoff) {
				continue
			}
			d.Due = due
			dated = append(dated, d)
		}
	}

	sort.SliceStable(dated, func(i, j int) bool { return dated[i].Due.Before(dated[j].Due) })
	out := append(dated, undated...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return lo.Ternary(out == nil, []domain.Deadline{}, out), nil
}

// parseDue reads a free-form due date.
func (s *DeadlineService) parseDue(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := dateparse.ParseIn(raw, s.loc); err == nil {
		return t, true
	}
	if m := monthDayYear.FindStringSubmatch(raw); m != nil {
		if t, err := dateparse.ParseIn(m[1]+", "+m[2], s.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
