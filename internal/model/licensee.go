package model

// Licensee is a party requesting usage rights to songs via licenses.
// Licenses is a derived back-reference list mirroring the approved
// licenses that reference this licensee, maintained manually alongside
// the owner lists.
//
// Fields:
//  ID       – unique identifier issued by the shared counter.
//  Name     – licensee display name.
//  Email    – contact email.
//  Licenses – ordered ids of approved licenses held by this licensee.
type Licensee struct {
	ID       uint64   `json:"id"`       // licensees.id
	Name     string   `json:"name"`     // display name
	Email    string   `json:"email"`    // contact email
	Licenses []uint64 `json:"licenses"` // derived: approved licenses held
}
