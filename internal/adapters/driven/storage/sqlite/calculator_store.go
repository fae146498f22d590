package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ==================== Calculator Store ====================

// calculatorStore implements driven.CalculatorStore.
type calculatorStore struct {
	store *Store
}

var _ driven.CalculatorStore = (*calculatorStore)(nil)

// Save stores or replaces a calculator and all of its rows.
func (s *calculatorStore) Save(ctx context.Context, calc domain.Calculator) error {
	return s.store.inTx(ctx, func(tx *sql.Tx) error {
		return insertCalculator(ctx, tx, calc)
	})
}

// Get retrieves a calculator by ID.
func (s *calculatorStore) Get(ctx context.Context, id int) (*domain.Calculator, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, desired_grade, created_at, updated_at
		FROM calculators WHERE id = ?
	`, id)

	calc, err := scanCalculator(row)
	if err != nil {
		return nil, err
	}

	rows, err := s.loadAssignments(ctx, "WHERE calculator_id = ?", id)
	if err != nil {
		return nil, err
	}
	calc.Assignments = rows[id]
	if calc.Assignments == nil {
		calc.Assignments = []domain.Assignment{}
	}
	return calc, nil
}

// List returns all calculators ordered by ID.
func (s *calculatorStore) List(ctx context.Context) ([]domain.Calculator, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, desired_grade, created_at, updated_at
		FROM calculators ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying calculators: %w", err)
	}
	defer rows.Close()

	calcs := []domain.Calculator{}
	for rows.Next() {
		calc, err := scanCalculator(rows)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, *calc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calculators: %w", err)
	}

	assignments, err := s.loadAssignments(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range calcs {
		calcs[i].Assignments = assignments[calcs[i].ID]
		if calcs[i].Assignments == nil {
			calcs[i].Assignments = []domain.Assignment{}
		}
	}
	return calcs, nil
}

// Delete removes a calculator and, through the foreign key, its rows.
func (s *calculatorStore) Delete(ctx context.Context, id int) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM calculators WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting calculator: %w", err)
	}
	return nil
}

// ReplaceAll swaps the full set of calculators in one transaction.
func (s *calculatorStore) ReplaceAll(ctx context.Context, calcs []domain.Calculator) error {
	return s.store.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM assignments"); err != nil {
			return fmt.Errorf("clearing assignments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM calculators"); err != nil {
			return fmt.Errorf("clearing calculators: %w", err)
		}
		for _, calc := range calcs {
			if err := insertCalculator(ctx, tx, calc); err != nil {
				return err
			}
		}
		return nil
	})
}

// loadAssignments returns rows grouped by calculator ID in display order.
func (s *calculatorStore) loadAssignments(
	ctx context.Context,
	where string,
	args ...any,
) (map[int][]domain.Assignment, error) {
	//nolint:gosec // where is a fixed clause chosen by this package
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT calculator_id, id, name, weight, grade, due_date
		FROM assignments `+where+`
		ORDER BY calculator_id, position
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying assignments: %w", err)
	}
	defer rows.Close()

	out := make(map[int][]domain.Assignment)
	for rows.Next() {
		var calcID int
		var a domain.Assignment
		if err := rows.Scan(&calcID, &a.ID, &a.Name, &a.Weight, &a.Grade, &a.DueDate); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		out[calcID] = append(out[calcID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

// insertCalculator upserts a calculator and rewrites its rows.
func insertCalculator(ctx context.Context, db execer, calc domain.Calculator) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO calculators (id, name, desired_grade, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			desired_grade = excluded.desired_grade,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, calc.ID, calc.Name, calc.DesiredGrade,
		formatNullableTime(calc.CreatedAt), formatNullableTime(calc.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving calculator: %w", err)
	}

	if _, err := db.ExecContext(ctx, "DELETE FROM assignments WHERE calculator_id = ?", calc.ID); err != nil {
		return fmt.Errorf("clearing assignments: %w", err)
	}
	for i, a := range calc.Assignments {
		_, err := db.ExecContext(ctx, `
			INSERT INTO assignments (calculator_id, position, id, name, weight, grade, due_date)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, calc.ID, i, a.ID, a.Name, a.Weight, a.Grade, a.DueDate)
		if err != nil {
			return fmt.Errorf("saving assignment: %w", err)
		}
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCalculator scans the calculator columns without its rows.
func scanCalculator(row rowScanner) (*domain.Calculator, error) {
	var calc domain.Calculator
	var createdAt, updatedAt sql.NullString
	if err := row.Scan(&calc.ID, &calc.Name, &calc.DesiredGrade, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning calculator: %w", err)
	}
	calc.CreatedAt = parseNullableTime(createdAt)
	calc.UpdatedAt = parseNullableTime(updatedAt)
	return &calc, nil
}

// ==================== Grade Scale Store ====================

// gradeScaleStore implements driven.GradeScaleStore.
type gradeScaleStore struct {
	store *Store
}

var _ driven.GradeScaleStore = (*gradeScaleStore)(nil)

// GetScale returns the custom scale, or nil when the default is in use.
func (s *gradeScaleStore) GetScale(ctx context.Context) (*domain.GradeScale, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT name, max_points, bands FROM grade_scale WHERE id = 1")

	var scale domain.GradeScale
	var bandsJSON string
	if err := row.Scan(&scale.Name, &scale.Max, &bandsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil //nolint:nilnil // nil means the default scale
		}
		return nil, fmt.Errorf("scanning grade scale: %w", err)
	}
	if err := json.Unmarshal([]byte(bandsJSON), &scale.Bands); err != nil {
		return nil, fmt.Errorf("unmarshalling grade bands: %w", err)
	}

	sorted := scale.Sorted()
	return &sorted, nil
}

// SaveScale stores a custom scale.
func (s *gradeScaleStore) SaveScale(ctx context.Context, scale domain.GradeScale) error {
	bands, err := json.Marshal(scale.Sorted().Bands)
	if err != nil {
		return fmt.Errorf("marshalling grade bands: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO grade_scale (id, name, max_points, bands)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			max_points = excluded.max_points,
			bands = excluded.bands
	`, scale.Name, scale.Max, string(bands))
	if err != nil {
		return fmt.Errorf("saving grade scale: %w", err)
	}
	return nil
}

// ResetScale removes the custom scale.
func (s *gradeScaleStore) ResetScale(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM grade_scale"); err != nil {
		return fmt.Errorf("resetting grade scale: %w", err)
	}
	return nil
}

// ==================== Sync State Store ====================

// syncStateStore implements driven.SyncStateStore.
type syncStateStore struct {
	store *Store
}

var _ driven.SyncStateStore = (*syncStateStore)(nil)

// Save stores the sync state.
func (s *syncStateStore) Save(ctx context.Context, state domain.SyncState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_state (id, last_pull, last_push, last_error, pending)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_pull = excluded.last_pull,
			last_push = excluded.last_push,
			last_error = excluded.last_error,
			pending = excluded.pending
	`, formatNullableTime(state.LastPull), formatNullableTime(state.LastPush),
		nullString(state.LastError), boolToInt(state.Pending))
	if err != nil {
		return fmt.Errorf("saving sync state: %w", err)
	}
	return nil
}

// Get retrieves the sync state, zero if nothing was saved.
func (s *syncStateStore) Get(ctx context.Context) (*domain.SyncState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT last_pull, last_push, last_error, pending FROM sync_state WHERE id = 1
	`)

	var state domain.SyncState
	var lastPull, lastPush, lastError sql.NullString
	var pending int
	if err := row.Scan(&lastPull, &lastPush, &lastError, &pending); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &state, nil
		}
		return nil, fmt.Errorf("scanning sync state: %w", err)
	}

	state.LastPull = parseNullableTime(lastPull)
	state.LastPush = parseNullableTime(lastPush)
	state.LastError = lastError.String
	state.Pending = pending == 1
	return &state, nil
}

// inTx runs fn inside a transaction, committing when it returns nil.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
