package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/iliyamo/music-licensing/internal/model"
)

// OwnerRepo encapsulates access to the `owners` key-value table.
type OwnerRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewOwnerRepo constructs an OwnerRepo with the provided DB handle.
func NewOwnerRepo(db *sql.DB) *OwnerRepo {
	return &OwnerRepo{db: db}
}

// Get fetches an owner by id.  It returns (nil, nil) when no record exists.
func (r *OwnerRepo) Get(ctx context.Context, id uint64) (*model.Owner, error) {
	rec, err := kvGet(ctx, r.db, "owners", id)
	if err != nil || rec == nil {
		return nil, err
	}
	var o model.Owner
	if err := json.Unmarshal(rec, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Put stores the owner under its id and returns the previous record if
// one existed.
func (r *OwnerRepo) Put(ctx context.Context, o *model.Owner) (*model.Owner, error) {
	rec, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	prev, err := kvPut(ctx, r.db, "owners", o.ID, rec)
	if err != nil || prev == nil {
		return nil, err
	}
	var old model.Owner
	if err := json.Unmarshal(prev, &old); err != nil {
		return nil, err
	}
	return &old, nil
}

// Remove deletes the owner stored under id and returns it, or (nil, nil)
// when absent.  The service layer never deletes owners (that would
// orphan dependent songs and licenses); the operation exists to keep
// the store contract uniform.
func (r *OwnerRepo) Remove(ctx context.Context, id uint64) (*model.Owner, error) {
	prev, err := kvRemove(ctx, r.db, "owners", id)
	if err != nil || prev == nil {
		return nil, err
	}
	var o model.Owner
	if err := json.Unmarshal(prev, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// All returns every owner ordered by id.
func (r *OwnerRepo) All(ctx context.Context) ([]model.Owner, error) {
	recs, err := kvAll(ctx, r.db, "owners")
	if err != nil {
		return nil, err
	}
	out := make([]model.Owner, 0, len(recs))
	for _, rec := range recs {
		var o model.Owner
		if err := json.Unmarshal(rec, &o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
