package licensing

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/music-licensing/internal/database"
	"github.com/iliyamo/music-licensing/internal/model"
	"github.com/iliyamo/music-licensing/internal/repository"
)

// newTestMaintainer builds a maintainer over raw repos, bypassing the
// service so tests can set up inconsistent states directly.
func newTestMaintainer(t *testing.T) (*Maintainer, *testEnv) {
	t.Helper()

	db, err := database.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	env := &testEnv{
		songs:     repository.NewSongRepo(db),
		owners:    repository.NewOwnerRepo(db),
		licenses:  repository.NewLicenseRepo(db),
		licensees: repository.NewLicenseeRepo(db),
	}
	return NewMaintainer(env.songs, env.owners, env.licenses, env.licensees), env
}

func TestAttachSong(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingOwner", func(t *testing.T) {
		m, _ := newTestMaintainer(t)
		if err := m.AttachSong(ctx, 7, 1); !errors.Is(err, ErrNotFound) { // owner 7 was never created
			t.Errorf("expected not-found error, got %v", err)
		}
	})

	t.Run("AppendsInOrder", func(t *testing.T) {
		m, env := newTestMaintainer(t)
		if _, err := env.owners.Put(ctx, &model.Owner{ID: 1, Name: "A", AuthKey: "k",
			SongIDs: []uint64{}, LicenseIDs: []uint64{}}); err != nil {
			t.Fatalf("failed to seed owner: %v", err)
		}

		for _, songID := range []uint64{5, 3, 9} {
			if err := m.AttachSong(ctx, 1, songID); err != nil {
				t.Fatalf("failed to attach song %d: %v", songID, err)
			}
		}

		owner, _ := env.owners.Get(ctx, 1)
		if len(owner.SongIDs) != 3 || owner.SongIDs[0] != 5 || owner.SongIDs[1] != 3 || owner.SongIDs[2] != 9 {
			t.Errorf("expected song ids in insertion order [5 3 9], got %v", owner.SongIDs)
		}
	})
}

func TestAttachLicense(t *testing.T) {
	ctx := context.Background()

	// The maintainer writes the owner list before looking up the
	// licensee.  When the licensee is missing the owner-side mutation
	// has already landed and is not rolled back.
	t.Run("MissingLicenseeLeavesOwnerMutated", func(t *testing.T) {
		m, env := newTestMaintainer(t)
		if _, err := env.owners.Put(ctx, &model.Owner{ID: 1, Name: "A", AuthKey: "k",
			SongIDs: []uint64{}, LicenseIDs: []uint64{}}); err != nil {
			t.Fatalf("failed to seed owner: %v", err)
		}

		err := m.AttachLicense(ctx, 1, 404, 42)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not-found error, got %v", err)
		}

		owner, _ := env.owners.Get(ctx, 1)
		if containsID(owner.LicenseIDs, 42) != 1 {
			t.Errorf("owner license list should keep the partial write, got %v", owner.LicenseIDs)
		}
	})
}

func TestDetachLicense(t *testing.T) {
	ctx := context.Background()
	m, env := newTestMaintainer(t)

	if _, err := env.owners.Put(ctx, &model.Owner{ID: 1, Name: "A", AuthKey: "k",
		SongIDs: []uint64{}, LicenseIDs: []uint64{}}); err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}
	if _, err := env.licensees.Put(ctx, &model.Licensee{ID: 2, Name: "B",
		Licenses: []uint64{}}); err != nil {
		t.Fatalf("failed to seed licensee: %v", err)
	}

	t.Run("AbsentFromOwner", func(t *testing.T) {
		if err := m.DetachLicense(ctx, 1, 2, 42); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected not-found error, got %v", err)
		}
	})

	t.Run("RemovesFromBoth", func(t *testing.T) {
		if err := m.AttachLicense(ctx, 1, 2, 42); err != nil {
			t.Fatalf("failed to attach: %v", err)
		}
		if err := m.DetachLicense(ctx, 1, 2, 42); err != nil {
			t.Fatalf("failed to detach: %v", err)
		}

		owner, _ := env.owners.Get(ctx, 1)
		licensee, _ := env.licensees.Get(ctx, 2)
		if len(owner.LicenseIDs) != 0 || len(licensee.Licenses) != 0 {
			t.Errorf("lists not emptied: owner=%v licensee=%v", owner.LicenseIDs, licensee.Licenses)
		}
	})
}

func TestRemoveID(t *testing.T) {
	ids := []uint64{1, 2, 3}

	got, ok := removeID(ids, 2)
	if !ok || len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("expected [1 3], got %v ok=%v", got, ok)
	}

	got, ok = removeID(ids, 9)
	if ok {
		t.Errorf("expected miss for absent id, got %v", got)
	}
}
