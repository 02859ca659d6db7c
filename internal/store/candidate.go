package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/delimatsuo/headhunter/internal/model"
)

const candidateColumns = `
	id, name, headline, current_title, current_company,
	specialty, skills, experience, last_active_at, updated_at`

// PgCandidateStore hydrates candidate profiles from postgres. Skills and
// experience live in jsonb columns; the search index holds only the
// derived fields, so full profiles always come from here.
type PgCandidateStore struct {
	pool *pgxpool.Pool
}

func NewCandidateStore(pool *pgxpool.Pool) *PgCandidateStore {
	return &PgCandidateStore{pool: pool}
}

func (s *PgCandidateStore) GetByID(ctx context.Context, id int64) (*model.Candidate, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)

	candidate, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get candidate %d: %w", id, err)
	}
	return candidate, nil
}

// GetByIDs bulk-hydrates candidates, preserving the order of ids. IDs the
// index knows but the store does not are skipped with a warning: the two
// systems sync asynchronously and brief divergence is expected.
func (s *PgCandidateStore) GetByIDs(ctx context.Context, ids []int64) ([]*model.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("get candidates: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*model.Candidate, len(ids))
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		byID[candidate.ID] = candidate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get candidates: %w", err)
	}

	out := make([]*model.Candidate, 0, len(ids))
	for _, id := range ids {
		candidate, ok := byID[id]
		if !ok {
			slog.WarnContext(ctx, "candidate in index but not in store, skipping", "candidate_id", id)
			continue
		}
		out = append(out, candidate)
	}
	return out, nil
}

func scanCandidate(row pgx.Row) (*model.Candidate, error) {
	var c model.Candidate
	var skillsRaw, experienceRaw []byte

	err := row.Scan(
		&c.ID, &c.Name, &c.Headline, &c.CurrentTitle, &c.CurrentCompany,
		&c.Specialty, &skillsRaw, &experienceRaw, &c.LastActiveAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(skillsRaw) > 0 {
		if err := json.Unmarshal(skillsRaw, &c.Skills); err != nil {
			return nil, fmt.Errorf("decode skills for candidate %d: %w", c.ID, err)
		}
	}
	if len(experienceRaw) > 0 {
		if err := json.Unmarshal(experienceRaw, &c.Experience); err != nil {
			return nil, fmt.Errorf("decode experience for candidate %d: %w", c.ID, err)
		}
	}
	return &c, nil
}
