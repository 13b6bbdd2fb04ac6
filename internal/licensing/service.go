package licensing

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/iliyamo/music-licensing/internal/model"
	"github.com/iliyamo/music-licensing/internal/repository"
)

// Service orchestrates the entity stores and the relationship
// maintainer behind every registry command and query.  A single mutex
// serializes commands, matching the single-writer execution model; the
// multi-step store updates inside one command remain non-atomic across
// failures (see Maintainer).
type Service struct {
	mu sync.Mutex

	songs     *repository.SongRepo
	owners    *repository.OwnerRepo
	licenses  *repository.LicenseRepo
	licensees *repository.LicenseeRepo
	ids       *repository.IDRepo
	rel       *Maintainer
	log       *log.Logger
}

// NewService constructs the command/query service over the four stores
// and the shared id allocator.
func NewService(songs *repository.SongRepo, owners *repository.OwnerRepo, licenses *repository.LicenseRepo, licensees *repository.LicenseeRepo, ids *repository.IDRepo, logger *log.Logger) *Service {
	if songs == nil || owners == nil || licenses == nil || licensees == nil || ids == nil {
		panic("nil repository passed to NewService")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		songs:     songs,
		owners:    owners,
		licenses:  licenses,
		licensees: licensees,
		ids:       ids,
		rel:       NewMaintainer(songs, owners, licenses, licensees),
		log:       logger.With("component", "licensing"),
	}
}

// ----- song queries -----

// AllSongs returns every licensable song.  An empty registry is a
// not-found error, not an empty list.
func (s *Service) AllSongs(ctx context.Context) ([]model.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	songs, err := s.songs.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, notFoundf("no licensable songs could be found")
	}
	return songs, nil
}

// Song returns the song stored under id.
func (s *Service) Song(ctx context.Context, id uint64) (*model.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getSong(ctx, id)
}

// SongOwner returns the public projection of the owner of the song
// stored under id.
func (s *Service) SongOwner(ctx context.Context, id uint64) (*model.OwnerSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song, err := s.getSong(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.getOwner(ctx, song.OwnerID)
	if err != nil {
		return nil, err
	}
	return &model.OwnerSummary{ID: owner.ID, Name: owner.Name, Email: owner.Email}, nil
}

// SearchSongs matches the query case-insensitively as a substring of a
// song's title, genre, or decimal year.  No matches is a not-found
// error.  The scan walks the whole song table; there is no index.
func (s *Service) SearchSongs(ctx context.Context, query string) ([]model.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	songs, err := s.songs.All(ctx)
	if err != nil {
		return nil, err
	}

	var matches []model.Song
	for _, song := range songs {
		if strings.Contains(strings.ToLower(song.Title), q) ||
			strings.Contains(strconv.FormatUint(uint64(song.Year), 10), q) ||
			strings.Contains(strings.ToLower(song.Genre), q) {
			matches = append(matches, song)
		}
	}
	if len(matches) == 0 {
		return nil, notFoundf("no songs could be found matching %q", query)
	}
	return matches, nil
}

// ----- song commands -----

// CreateSong validates the payload, allocates a fresh id, registers the
// song on the owner's list and stores the record.  The attach lands
// before the song write: a failing song write leaves the owner's list
// referencing an id with no record, which the caller must reconcile.
func (s *Service) CreateSong(ctx context.Context, p SongPayload) (*model.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if owner, err := s.owners.Get(ctx, p.OwnerID); err != nil {
		return nil, err
	} else if owner == nil {
		return nil, notFoundf("owner id:%d could not be found, add owner first", p.OwnerID)
	}

	id, err := s.ids.Next(ctx)
	if err != nil {
		return nil, err
	}

	song := &model.Song{
		ID:      id,
		Title:   p.Title,
		Artist:  p.Artist,
		OwnerID: p.OwnerID,
		Year:    p.Year,
		Genre:   p.Genre,
		Price:   p.Price,
	}

	if err := s.rel.AttachSong(ctx, song.OwnerID, song.ID); err != nil {
		return nil, err
	}

	prev, err := s.songs.Put(ctx, song)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		return nil, invalidf("song title:%s could not be created", p.Title)
	}

	s.log.Info("song created", "id", song.ID, "owner_id", song.OwnerID, "title", song.Title)
	return song, nil
}

// UpdateSong replaces the song's fields wholesale after an auth-key
// check against the owning rights-holder.  Id and owner are unchanged.
func (s *Service) UpdateSong(ctx context.Context, p UpdateSongPayload) (*model.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	song, err := s.getSong(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	owner, err := s.getOwner(ctx, song.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.AuthKey != p.AuthKey {
		return nil, unauthorizedf("auth key:%s is invalid, only song owner can update", p.AuthKey)
	}

	song.Title = p.Title
	song.Artist = p.Artist
	song.Year = p.Year
	song.Genre = p.Genre
	song.Price = p.Price

	prev, err := s.songs.Put(ctx, song)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, invalidf("song title:%s id:%d could not be updated", p.Title, p.ID)
	}

	s.log.Info("song updated", "id", song.ID, "title", song.Title)
	return song, nil
}

// DeleteSong repairs every back-reference (owner song list, licensee
// license lists) before removing the song record.  An auth-key mismatch
// is reported as an invalid payload on this operation.
func (s *Service) DeleteSong(ctx context.Context, authKey string, id uint64) (*model.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song, err := s.getSong(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.getOwner(ctx, song.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.AuthKey != authKey {
		return nil, invalidf("auth key:%s is invalid, only song owner can delete", authKey)
	}

	if err := s.rel.DetachSong(ctx, id); err != nil {
		return nil, err
	}

	removed, err := s.songs.Remove(ctx, id)
	if err != nil {
		return nil, err
	}
	if removed == nil {
		return nil, invalidf("song id:%d could not be deleted", id)
	}

	s.log.Info("song deleted", "id", id, "owner_id", owner.ID)
	return removed, nil
}

// ----- owner operations -----

// CreateOwner validates the payload and stores a new rights-holder with
// empty back-reference lists.
func (s *Service) CreateOwner(ctx context.Context, p OwnerPayload) (*model.Owner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := p.Validate(); err != nil {
		return nil, err
	}

	id, err := s.ids.Next(ctx)
	if err != nil {
		return nil, err
	}

	owner := &model.Owner{
		ID:         id,
		Name:       p.Name,
		Email:      p.Email,
		AuthKey:    p.AuthKey,
		SongIDs:    []uint64{},
		LicenseIDs: []uint64{},
	}

	prev, err := s.owners.Put(ctx, owner)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		return nil, invalidf("owner name:%s could not be created", p.Name)
	}

	s.log.Info("owner created", "id", owner.ID, "name", owner.Name)
	return owner, nil
}

// ----- license queries -----

// License returns the license stored under id.
func (s *Service) License(ctx context.Context, id uint64) (*model.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLicense(ctx, id)
}

// OwnerLicenseRequests returns every license (approved or not) where
// the given owner is the rights-holder.  Full scan over the license
// table; none found is a not-found error.
func (s *Service) OwnerLicenseRequests(ctx context.Context, ownerID uint64) ([]model.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	licenses, err := s.licenses.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.License
	for _, l := range licenses {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil, notFoundf("no licenses could be found for owner id:%d", ownerID)
	}
	return out, nil
}

// LicenseeLicenses returns every license referencing the given
// licensee, approved or not.
func (s *Service) LicenseeLicenses(ctx context.Context, licenseeID uint64) ([]model.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	licenses, err := s.licenses.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.License
	for _, l := range licenses {
		if l.LicenseeID == licenseeID {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil, notFoundf("no licenses could be found for licensee id:%d", licenseeID)
	}
	return out, nil
}

// ----- license commands -----

// CreateLicenseRequest records a new unapproved license binding the
// song, its current owner and the licensee.  Any caller may request a
// license; no authorization applies.  The id is allocated before the
// referenced entities are validated, so a failed request leaves a gap
// in the id sequence.
func (s *Service) CreateLicenseRequest(ctx context.Context, p LicensePayload) (*model.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.ids.Next(ctx)
	if err != nil {
		return nil, err
	}

	if licensee, err := s.licensees.Get(ctx, p.LicenseeID); err != nil {
		return nil, err
	} else if licensee == nil {
		return nil, notFoundf("licensee id:%d could not be found, add them first", p.LicenseeID)
	}

	song, err := s.getSong(ctx, p.SongID)
	if err != nil {
		return nil, err
	}

	license := &model.License{
		ID:         id,
		SongID:     p.SongID,
		OwnerID:    song.OwnerID, // copied once, never re-derived
		LicenseeID: p.LicenseeID,
		Approved:   false,
		Price:      0,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
	}

	prev, err := s.licenses.Put(ctx, license)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		return nil, invalidf("license id:%d could not be created", id)
	}

	s.log.Info("license requested", "id", license.ID, "song_id", license.SongID, "licensee_id", license.LicenseeID)
	return license, nil
}

// ApproveLicense moves a requested license into the approved state:
// the id is appended to both parties' lists and the price is set to the
// supplied cost.  Only the song owner's auth key authorizes approval.
func (s *Service) ApproveLicense(ctx context.Context, p ApprovePayload) (*model.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	license, err := s.getLicense(ctx, p.LicenseID)
	if err != nil {
		return nil, err
	}
	owner, err := s.getOwner(ctx, license.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.AuthKey != p.AuthKey {
		return nil, unauthorizedf("auth key:%s is invalid, only song owner can approve", p.AuthKey)
	}
	if license.Approved {
		return nil, alreadyApprovedf("license id:%d has already been approved", p.LicenseID)
	}

	if err := s.rel.AttachLicense(ctx, license.OwnerID, license.LicenseeID, license.ID); err != nil {
		return nil, err
	}

	license.Approved = true
	license.Price = p.Cost

	prev, err := s.licenses.Put(ctx, license)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, invalidf("license id:%d could not be approved", p.LicenseID)
	}

	s.log.Info("license approved", "id", license.ID, "owner_id", license.OwnerID, "cost", p.Cost)
	return license, nil
}

// RevokeLicense moves an approved license back to the requested state:
// the id is removed from both parties' lists and the approved flag is
// cleared.  The price deliberately keeps its last negotiated value.
// Revoking a license that is not approved fails with a not-found error
// from the list search.
func (s *Service) RevokeLicense(ctx context.Context, p RevokePayload) (*model.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	license, err := s.getLicense(ctx, p.LicenseID)
	if err != nil {
		return nil, err
	}
	owner, err := s.getOwner(ctx, license.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.AuthKey != p.AuthKey {
		return nil, unauthorizedf("auth key:%s is invalid, only song owner can revoke", p.AuthKey)
	}

	if err := s.rel.DetachLicense(ctx, license.OwnerID, license.LicenseeID, license.ID); err != nil {
		return nil, err
	}

	license.Approved = false

	prev, err := s.licenses.Put(ctx, license)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, invalidf("license id:%d could not be revoked", p.LicenseID)
	}

	s.log.Info("license revoked", "id", license.ID, "owner_id", license.OwnerID)
	return license, nil
}

// ----- licensee operations -----

// Licensee returns the licensee stored under id.
func (s *Service) Licensee(ctx context.Context, id uint64) (*model.Licensee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	licensee, err := s.licensees.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if licensee == nil {
		return nil, notFoundf("licensee id:%d could not be found", id)
	}
	return licensee, nil
}

// CreateLicensee validates the payload and stores a new licensee with
// an empty license list.
func (s *Service) CreateLicensee(ctx context.Context, p LicenseePayload) (*model.Licensee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := p.Validate(); err != nil {
		return nil, err
	}

	id, err := s.ids.Next(ctx)
	if err != nil {
		return nil, err
	}

	licensee := &model.Licensee{
		ID:       id,
		Name:     p.Name,
		Email:    p.Email,
		Licenses: []uint64{},
	}

	prev, err := s.licensees.Put(ctx, licensee)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		return nil, invalidf("licensee name:%s could not be created", p.Name)
	}

	s.log.Info("licensee created", "id", licensee.ID, "name", licensee.Name)
	return licensee, nil
}

// ----- lookup helpers -----

func (s *Service) getSong(ctx context.Context, id uint64) (*model.Song, error) {
	song, err := s.songs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, notFoundf("song id:%d could not be found", id)
	}
	return song, nil
}

func (s *Service) getOwner(ctx context.Context, id uint64) (*model.Owner, error) {
	owner, err := s.owners.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, notFoundf("owner id:%d could not be found", id)
	}
	return owner, nil
}

func (s *Service) getLicense(ctx context.Context, id uint64) (*model.License, error) {
	license, err := s.licenses.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if license == nil {
		return nil, notFoundf("license id:%d could not be found", id)
	}
	return license, nil
}
