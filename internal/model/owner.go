package model

// Owner is a rights-holder controlling one or more songs.  The SongIDs
// and LicenseIDs slices are derived back-reference lists: the
// authoritative facts live on Song.OwnerID and License.OwnerID, and the
// relationship maintainer keeps these lists in sync because the storage
// layer has no cascading constraints.
//
// Fields:
//  ID         – unique identifier issued by the shared counter.
//  Name       – owner display name.
//  Email      – contact email.
//  AuthKey    – shared-secret string compared for equality on protected
//               mutations.  Not cryptographic identity.
//  SongIDs    – ordered ids of songs this owner controls.
//  LicenseIDs – ordered ids of approved licenses where this owner is the
//               rights-holder.
type Owner struct {
	ID         uint64   `json:"id"`          // owners.id
	Name       string   `json:"name"`        // display name
	Email      string   `json:"email"`       // contact email
	AuthKey    string   `json:"auth_key"`    // shared secret
	SongIDs    []uint64 `json:"song_ids"`    // derived: songs owned
	LicenseIDs []uint64 `json:"license_ids"` // derived: approved licenses held
}

// OwnerSummary is the public projection of an owner returned from song
// owner lookups.  It omits the auth key and the back-reference lists.
type OwnerSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
