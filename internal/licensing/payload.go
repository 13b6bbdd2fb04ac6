package licensing

// Payload structs mirror the request bodies of the mutating endpoints.
// Field-level validation is minimal: display names and titles must be
// at least two characters where validated; everything else is an
// unconstrained string or number.

// SongPayload carries the fields for creating a song.
type SongPayload struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	OwnerID uint64 `json:"owner_id"`
	Year    uint32 `json:"year"`
	Genre   string `json:"genre"`
	Price   uint32 `json:"price"`
}

// Validate checks field constraints and returns an invalid-payload
// error on violation.
func (p *SongPayload) Validate() error {
	if len(p.Title) < 2 {
		return invalidf("title must be at least 2 characters long")
	}
	return nil
}

// UpdateSongPayload carries the fields for a wholesale song update.
// The id and owner of the song are never changed by an update.
type UpdateSongPayload struct {
	AuthKey string `json:"auth_key"`
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Year    uint32 `json:"year"`
	Genre   string `json:"genre"`
	Price   uint32 `json:"price"`
}

func (p *UpdateSongPayload) Validate() error {
	if len(p.Title) < 2 {
		return invalidf("title must be at least 2 characters long")
	}
	return nil
}

// OwnerPayload carries the fields for creating an owner.
type OwnerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	AuthKey string `json:"auth_key"`
}

func (p *OwnerPayload) Validate() error {
	if len(p.Name) < 2 {
		return invalidf("name must be at least 2 characters long")
	}
	return nil
}

// LicensePayload carries the fields for creating a license request.
// The owner is not part of the payload; it is copied from the song.
type LicensePayload struct {
	SongID     uint64 `json:"song_id"`
	LicenseeID uint64 `json:"licensee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// LicenseePayload carries the fields for creating a licensee.
type LicenseePayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (p *LicenseePayload) Validate() error {
	if len(p.Name) < 2 {
		return invalidf("name must be at least 2 characters long")
	}
	return nil
}

// ApprovePayload authorizes approval of a license request at a cost.
type ApprovePayload struct {
	AuthKey   string `json:"auth_key"`
	LicenseID uint64 `json:"license_id"`
	Cost      uint32 `json:"cost"`
}

// RevokePayload authorizes revocation of an approved license.
type RevokePayload struct {
	AuthKey   string `json:"auth_key"`
	LicenseID uint64 `json:"license_id"`
}
