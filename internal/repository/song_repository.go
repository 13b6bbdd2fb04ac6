package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/iliyamo/music-licensing/internal/model"
)

// SongRepo encapsulates access to the `songs` key-value table.  It
// depends on a sql.DB connection which should be configured elsewhere.
type SongRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewSongRepo constructs a SongRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.
func NewSongRepo(db *sql.DB) *SongRepo {
	return &SongRepo{db: db}
}

// Get fetches a song by id.  It returns (nil, nil) when no record exists.
func (r *SongRepo) Get(ctx context.Context, id uint64) (*model.Song, error) {
	rec, err := kvGet(ctx, r.db, "songs", id)
	if err != nil || rec == nil {
		return nil, err
	}
	var s model.Song
	if err := json.Unmarshal(rec, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Put stores the song under its id and returns the previous record if
// one existed.
func (r *SongRepo) Put(ctx context.Context, s *model.Song) (*model.Song, error) {
	rec, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	prev, err := kvPut(ctx, r.db, "songs", s.ID, rec)
	if err != nil || prev == nil {
		return nil, err
	}
	var old model.Song
	if err := json.Unmarshal(prev, &old); err != nil {
		return nil, err
	}
	return &old, nil
}

// Remove deletes the song stored under id and returns it, or (nil, nil)
// when absent.
func (r *SongRepo) Remove(ctx context.Context, id uint64) (*model.Song, error) {
	prev, err := kvRemove(ctx, r.db, "songs", id)
	if err != nil || prev == nil {
		return nil, err
	}
	var s model.Song
	if err := json.Unmarshal(prev, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// All returns every song ordered by id.  Each call is a fresh snapshot.
func (r *SongRepo) All(ctx context.Context) ([]model.Song, error) {
	recs, err := kvAll(ctx, r.db, "songs")
	if err != nil {
		return nil, err
	}
	out := make([]model.Song, 0, len(recs))
	for _, rec := range recs {
		var s model.Song
		if err := json.Unmarshal(rec, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
