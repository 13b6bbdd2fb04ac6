package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/iliyamo/music-licensing/internal/model"
)

// LicenseRepo encapsulates access to the `licenses` key-value table.
// There are no secondary indexes: lookups by owner, licensee or song
// are full scans over All.
type LicenseRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewLicenseRepo constructs a LicenseRepo with the provided DB handle.
func NewLicenseRepo(db *sql.DB) *LicenseRepo {
	return &LicenseRepo{db: db}
}

// Get fetches a license by id.  It returns (nil, nil) when no record exists.
func (r *LicenseRepo) Get(ctx context.Context, id uint64) (*model.License, error) {
	rec, err := kvGet(ctx, r.db, "licenses", id)
	if err != nil || rec == nil {
		return nil, err
	}
	var l model.License
	if err := json.Unmarshal(rec, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Put stores the license under its id and returns the previous record
// if one existed.
func (r *LicenseRepo) Put(ctx context.Context, l *model.License) (*model.License, error) {
	rec, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	prev, err := kvPut(ctx, r.db, "licenses", l.ID, rec)
	if err != nil || prev == nil {
		return nil, err
	}
	var old model.License
	if err := json.Unmarshal(prev, &old); err != nil {
		return nil, err
	}
	return &old, nil
}

// Remove deletes the license stored under id and returns it, or
// (nil, nil) when absent.
func (r *LicenseRepo) Remove(ctx context.Context, id uint64) (*model.License, error) {
	prev, err := kvRemove(ctx, r.db, "licenses", id)
	if err != nil || prev == nil {
		return nil, err
	}
	var l model.License
	if err := json.Unmarshal(prev, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// All returns every license ordered by id.  Each call is a fresh snapshot.
func (r *LicenseRepo) All(ctx context.Context) ([]model.License, error) {
	recs, err := kvAll(ctx, r.db, "licenses")
	if err != nil {
		return nil, err
	}
	out := make([]model.License, 0, len(recs))
	for _, rec := range recs {
		var l model.License
		if err := json.Unmarshal(rec, &l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
