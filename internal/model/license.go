package model

// License is an agreement binding one song, its owner and a licensee
// with an approval state and a validity window.  OwnerID is copied from
// the song at request time and never re-derived afterwards; ownership
// transfer is unsupported.
//
// A license cycles between two states: requested (approved=false,
// absent from both parties' lists) and approved (approved=true, present
// in both).  Price is 0 until first approval and is deliberately left
// unchanged on revoke.
//
// Fields:
//  ID         – unique identifier issued by the shared counter.
//  SongID     – referenced song.
//  OwnerID    – rights-holder, copied from the song at request time.
//  LicenseeID – requesting party.
//  Approved   – approval state.
//  Price      – negotiated cost, set on approval.
//  StartDate  – validity window start (free-form date string).
//  EndDate    – validity window end.
type License struct {
	ID         uint64 `json:"id"`          // licenses.id
	SongID     uint64 `json:"song_id"`     // referenced song
	OwnerID    uint64 `json:"owner_id"`    // rights-holder at request time
	LicenseeID uint64 `json:"licensee_id"` // requesting party
	Approved   bool   `json:"approved"`    // approval state
	Price      uint32 `json:"price"`       // negotiated cost
	StartDate  string `json:"start_date"`  // validity start
	EndDate    string `json:"end_date"`    // validity end
}
