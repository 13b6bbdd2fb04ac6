// Package queue defines message payloads exchanged over the message broker.
package queue

// LicenseApprovedEvent is published when an owner approves a license
// request.  It contains enough information for downstream consumers to
// log, notify, or trigger billing without querying the registry.
type LicenseApprovedEvent struct {
	LicenseID  uint64 `json:"license_id"`
	SongID     uint64 `json:"song_id"`
	OwnerID    uint64 `json:"owner_id"`
	LicenseeID uint64 `json:"licensee_id"`
	Price      uint32 `json:"price"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	ApprovedAt string `json:"approved_at"`
}

// LicenseRevokedEvent is published when an owner revokes an approved
// license.  The license record survives revocation, so only the
// identifying references travel with the event.
type LicenseRevokedEvent struct {
	LicenseID  uint64 `json:"license_id"`
	SongID     uint64 `json:"song_id"`
	OwnerID    uint64 `json:"owner_id"`
	LicenseeID uint64 `json:"licensee_id"`
	RevokedAt  string `json:"revoked_at"`
}
