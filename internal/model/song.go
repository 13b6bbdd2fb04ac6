package model

// Song represents a licensable track controlled by a single owner.
// Each song belongs to exactly one owner for billing and authorization
// purposes.  The struct is the JSON record stored under the song's id
// in the `songs` table.
//
// Fields:
//  ID      – unique identifier issued by the shared counter.
//  Title   – human-friendly song title.
//  Artist  – performing artist.
//  OwnerID – id of the owner holding the licensing rights.
//  Year    – release year.
//  Genre   – free-form genre label.
//  Price   – listed price of the song itself.
type Song struct {
	ID      uint64 `json:"id"`       // songs.id
	Title   string `json:"title"`    // song title
	Artist  string `json:"artist"`   // performing artist
	OwnerID uint64 `json:"owner_id"` // owning rights-holder
	Year    uint32 `json:"year"`     // release year
	Genre   string `json:"genre"`    // genre label
	Price   uint32 `json:"price"`    // listed price
}
