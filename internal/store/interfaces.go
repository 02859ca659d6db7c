package store

import (
	"context"
	"errors"

	"github.com/delimatsuo/headhunter/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// CandidateStore defines the contract for candidate profile access. The
// pipeline only reads: profile writes belong to the ingestion system.
type CandidateStore interface {
	GetByID(ctx context.Context, id int64) (*model.Candidate, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*model.Candidate, error)
}
