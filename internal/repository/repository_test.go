package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/iliyamo/music-licensing/internal/database"
	"github.com/iliyamo/music-licensing/internal/model"
)

// setupTestDB creates an in-memory SQLite database with the registry
// schema applied.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	// Each sqlite connection gets its own :memory: database; pin the
	// pool to one connection so every query sees the same data.
	db.SetMaxOpenConns(1)

	if err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestIDRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("MonotonicallyIncreasing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		ids := NewIDRepo(db)
		var prev uint64
		for i := 0; i < 5; i++ {
			id, err := ids.Next(ctx)
			if err != nil {
				t.Fatalf("failed to allocate id: %v", err)
			}
			if i > 0 && id <= prev {
				t.Errorf("id %d not greater than previous %d", id, prev)
			}
			prev = id
		}
	})

	t.Run("PersistedAcrossRepos", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		first, err := NewIDRepo(db).Next(ctx)
		if err != nil {
			t.Fatalf("failed to allocate id: %v", err)
		}
		second, err := NewIDRepo(db).Next(ctx)
		if err != nil {
			t.Fatalf("failed to allocate id: %v", err)
		}
		if second != first+1 {
			t.Errorf("expected %d, got %d", first+1, second)
		}
	})

	t.Run("MissingCounterRow", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		if _, err := db.Exec(`DELETE FROM id_counter`); err != nil {
			t.Fatalf("failed to clear counter: %v", err)
		}
		if _, err := NewIDRepo(db).Next(ctx); err != ErrCounterMissing {
			t.Errorf("expected ErrCounterMissing, got %v", err)
		}
	})
}

func TestSongRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("GetAbsent", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		song, err := NewSongRepo(db).Get(ctx, 42)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if song != nil {
			t.Errorf("expected nil for absent song, got %+v", song)
		}
	})

	t.Run("PutReturnsPrevious", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSongRepo(db)
		song := &model.Song{ID: 1, Title: "Blue in Green", Artist: "Miles Davis", OwnerID: 7, Year: 1959, Genre: "Jazz", Price: 100}

		prev, err := repo.Put(ctx, song)
		if err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if prev != nil {
			t.Errorf("expected no previous record, got %+v", prev)
		}

		song.Title = "So What"
		prev, err = repo.Put(ctx, song)
		if err != nil {
			t.Fatalf("second put failed: %v", err)
		}
		if prev == nil || prev.Title != "Blue in Green" {
			t.Errorf("expected previous record with old title, got %+v", prev)
		}

		got, err := repo.Get(ctx, 1)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got == nil || got.Title != "So What" {
			t.Errorf("expected updated title, got %+v", got)
		}
	})

	t.Run("RemoveReturnsRecord", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSongRepo(db)
		if _, err := repo.Put(ctx, &model.Song{ID: 3, Title: "Naima", OwnerID: 1}); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		removed, err := repo.Remove(ctx, 3)
		if err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if removed == nil || removed.Title != "Naima" {
			t.Errorf("expected removed record, got %+v", removed)
		}

		again, err := repo.Remove(ctx, 3)
		if err != nil {
			t.Fatalf("second remove failed: %v", err)
		}
		if again != nil {
			t.Errorf("expected nil on removing absent record, got %+v", again)
		}
	})

	t.Run("AllInIdOrder", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSongRepo(db)
		for _, id := range []uint64{9, 2, 5} {
			if _, err := repo.Put(ctx, &model.Song{ID: id, Title: "Track", OwnerID: 1}); err != nil {
				t.Fatalf("put failed: %v", err)
			}
		}

		songs, err := repo.All(ctx)
		if err != nil {
			t.Fatalf("all failed: %v", err)
		}
		want := []uint64{2, 5, 9}
		if len(songs) != len(want) {
			t.Fatalf("expected %d songs, got %d", len(want), len(songs))
		}
		for i, s := range songs {
			if s.ID != want[i] {
				t.Errorf("position %d: expected id %d, got %d", i, want[i], s.ID)
			}
		}
	})
}

func TestOwnerRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	defer db.Close()

	repo := NewOwnerRepo(db)
	owner := &model.Owner{ID: 4, Name: "Blue Note", Email: "a&r@bluenote.test", AuthKey: "k1", SongIDs: []uint64{1, 2}, LicenseIDs: []uint64{}}
	if _, err := repo.Put(ctx, owner); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := repo.Get(ctx, 4)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected owner record")
	}
	if got.AuthKey != "k1" {
		t.Errorf("expected auth key k1, got %q", got.AuthKey)
	}
	if len(got.SongIDs) != 2 || got.SongIDs[0] != 1 || got.SongIDs[1] != 2 {
		t.Errorf("song ids not preserved: %v", got.SongIDs)
	}
	if got.LicenseIDs == nil || len(got.LicenseIDs) != 0 {
		t.Errorf("expected empty license list, got %v", got.LicenseIDs)
	}
}
