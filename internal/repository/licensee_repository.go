package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/iliyamo/music-licensing/internal/model"
)

// LicenseeRepo encapsulates access to the `licensees` key-value table.
type LicenseeRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewLicenseeRepo constructs a LicenseeRepo with the provided DB handle.
func NewLicenseeRepo(db *sql.DB) *LicenseeRepo {
	return &LicenseeRepo{db: db}
}

// Get fetches a licensee by id.  It returns (nil, nil) when no record exists.
func (r *LicenseeRepo) Get(ctx context.Context, id uint64) (*model.Licensee, error) {
	rec, err := kvGet(ctx, r.db, "licensees", id)
	if err != nil || rec == nil {
		return nil, err
	}
	var l model.Licensee
	if err := json.Unmarshal(rec, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Put stores the licensee under its id and returns the previous record
// if one existed.
func (r *LicenseeRepo) Put(ctx context.Context, l *model.Licensee) (*model.Licensee, error) {
	rec, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	prev, err := kvPut(ctx, r.db, "licensees", l.ID, rec)
	if err != nil || prev == nil {
		return nil, err
	}
	var old model.Licensee
	if err := json.Unmarshal(prev, &old); err != nil {
		return nil, err
	}
	return &old, nil
}

// Remove deletes the licensee stored under id and returns it, or
// (nil, nil) when absent.  Licensee deletion has no service-level
// operation; see Remove on OwnerRepo.
func (r *LicenseeRepo) Remove(ctx context.Context, id uint64) (*model.Licensee, error) {
	prev, err := kvRemove(ctx, r.db, "licensees", id)
	if err != nil || prev == nil {
		return nil, err
	}
	var l model.Licensee
	if err := json.Unmarshal(prev, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// All returns every licensee ordered by id.
func (r *LicenseeRepo) All(ctx context.Context) ([]model.Licensee, error) {
	recs, err := kvAll(ctx, r.db, "licensees")
	if err != nil {
		return nil, err
	}
	out := make([]model.Licensee, 0, len(recs))
	for _, rec := range recs {
		var l model.Licensee
		if err := json.Unmarshal(rec, &l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
