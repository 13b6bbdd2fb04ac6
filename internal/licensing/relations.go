package licensing

import (
	"context"

	"github.com/iliyamo/music-licensing/internal/repository"
)

// Maintainer keeps the derived back-reference lists (Owner.SongIDs,
// Owner.LicenseIDs, Licensee.Licenses) consistent with the
// authoritative references held on Song and License records.
//
// Every operation is a sequence of independent reads and writes over
// the per-entity stores and is NOT atomic across that sequence: when a
// later write fails, earlier writes persist.  The storage layer offers
// no multi-key transactions, so callers must treat such failures as
// requiring manual reconciliation rather than retrying blindly.
type Maintainer struct {
	songs     *repository.SongRepo
	owners    *repository.OwnerRepo
	licenses  *repository.LicenseRepo
	licensees *repository.LicenseeRepo
}

// NewMaintainer constructs a Maintainer over the four entity stores.
func NewMaintainer(songs *repository.SongRepo, owners *repository.OwnerRepo, licenses *repository.LicenseRepo, licensees *repository.LicenseeRepo) *Maintainer {
	return &Maintainer{songs: songs, owners: owners, licenses: licenses, licensees: licensees}
}

// AttachSong appends songID to the owner's song list.
func (m *Maintainer) AttachSong(ctx context.Context, ownerID, songID uint64) error {
	owner, err := m.owners.Get(ctx, ownerID)
	if err != nil {
		return err
	}
	if owner == nil {
		return notFoundf("owner id:%d could not be found", ownerID)
	}

	owner.SongIDs = append(owner.SongIDs, songID)

	prev, err := m.owners.Put(ctx, owner)
	if err != nil {
		return err
	}
	if prev == nil {
		return invalidf("song id:%d could not be added to owner id:%d", songID, ownerID)
	}
	return nil
}

// AttachLicense appends licenseID to both the owner's license list and
// the licensee's license list.  It is called only on approval: an
// unapproved license is reflected in neither list.  The owner write
// lands before the licensee write; a failure in between leaves the
// license attached to the owner only.
func (m *Maintainer) AttachLicense(ctx context.Context, ownerID, licenseeID, licenseID uint64) error {
	owner, err := m.owners.Get(ctx, ownerID)
	if err != nil {
		return err
	}
	if owner == nil {
		return notFoundf("owner id:%d could not be found", ownerID)
	}

	owner.LicenseIDs = append(owner.LicenseIDs, licenseID)
	prev, err := m.owners.Put(ctx, owner)
	if err != nil {
		return err
	}
	if prev == nil {
		return invalidf("license id:%d could not be added to owner id:%d", licenseID, ownerID)
	}

	licensee, err := m.licensees.Get(ctx, licenseeID)
	if err != nil {
		return err
	}
	if licensee == nil {
		return notFoundf("licensee id:%d could not be found", licenseeID)
	}

	licensee.Licenses = append(licensee.Licenses, licenseID)
	prevL, err := m.licensees.Put(ctx, licensee)
	if err != nil {
		return err
	}
	if prevL == nil {
		return invalidf("license id:%d could not be added to licensee id:%d", licenseID, licenseeID)
	}
	return nil
}

// DetachLicense removes licenseID from both lists by linear search on
// value equality.  It fails with a not-found error when the id is
// absent from either list; callers only invoke it for a license they
// know is currently approved.
func (m *Maintainer) DetachLicense(ctx context.Context, ownerID, licenseeID, licenseID uint64) error {
	owner, err := m.owners.Get(ctx, ownerID)
	if err != nil {
		return err
	}
	if owner == nil {
		return notFoundf("owner id:%d could not be found", ownerID)
	}

	ids, ok := removeID(owner.LicenseIDs, licenseID)
	if !ok {
		return notFoundf("license id:%d could not be found in owner id:%d", licenseID, ownerID)
	}
	owner.LicenseIDs = ids
	prev, err := m.owners.Put(ctx, owner)
	if err != nil {
		return err
	}
	if prev == nil {
		return invalidf("license id:%d could not be removed from owner id:%d", licenseID, ownerID)
	}

	licensee, err := m.licensees.Get(ctx, licenseeID)
	if err != nil {
		return err
	}
	if licensee == nil {
		return notFoundf("licensee id:%d could not be found", licenseeID)
	}

	ids, ok = removeID(licensee.Licenses, licenseID)
	if !ok {
		return notFoundf("license id:%d could not be found in licensee id:%d", licenseID, licenseeID)
	}
	licensee.Licenses = ids
	prevL, err := m.licensees.Put(ctx, licensee)
	if err != nil {
		return err
	}
	if prevL == nil {
		return invalidf("license id:%d could not be removed from licensee id:%d", licenseID, licenseeID)
	}
	return nil
}

// DetachSong removes songID from its owner's song list, then scans the
// whole license table and removes every license referencing the song
// from the corresponding licensee's list.  This is the most expensive
// maintainer operation and the only one cascading across more than two
// entities; it is used exclusively by song deletion.
//
// Licenses that never reached the approved state are absent from their
// licensee's list and are skipped rather than aborting the cascade.
func (m *Maintainer) DetachSong(ctx context.Context, songID uint64) error {
	song, err := m.songs.Get(ctx, songID)
	if err != nil {
		return err
	}
	if song == nil {
		return notFoundf("song id:%d could not be found", songID)
	}

	owner, err := m.owners.Get(ctx, song.OwnerID)
	if err != nil {
		return err
	}
	if owner == nil {
		return notFoundf("owner id:%d could not be found", song.OwnerID)
	}

	ids, ok := removeID(owner.SongIDs, songID)
	if !ok {
		return notFoundf("song id:%d could not be found in owner id:%d", songID, owner.ID)
	}
	owner.SongIDs = ids
	prev, err := m.owners.Put(ctx, owner)
	if err != nil {
		return err
	}
	if prev == nil {
		return invalidf("song id:%d could not be removed from owner id:%d", songID, owner.ID)
	}

	// Full scan: the license store has no index on song_id.
	licenses, err := m.licenses.All(ctx)
	if err != nil {
		return err
	}
	for _, lic := range licenses {
		if lic.SongID != songID {
			continue
		}
		licensee, err := m.licensees.Get(ctx, lic.LicenseeID)
		if err != nil {
			return err
		}
		if licensee == nil {
			return notFoundf("licensee id:%d could not be found", lic.LicenseeID)
		}
		lids, ok := removeID(licensee.Licenses, lic.ID)
		if !ok {
			continue // never approved, nothing to detach
		}
		licensee.Licenses = lids
		prevL, err := m.licensees.Put(ctx, licensee)
		if err != nil {
			return err
		}
		if prevL == nil {
			return invalidf("license id:%d could not be removed from licensee id:%d", lic.ID, licensee.ID)
		}
	}
	return nil
}

// removeID deletes the first occurrence of id from ids, reporting
// whether it was present.
func removeID(ids []uint64, id uint64) ([]uint64, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
