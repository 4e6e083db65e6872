// Package models defines client-side data models used by the storysync CLI
// and sync worker.
package models

import "time"

// Story is a confirmed, server-stored post. Stories are immutable once
// confirmed; the Id is server-assigned and never changes.
type Story struct {
	// Id is the globally unique, server-assigned identifier.
	Id string `json:"id"`

	// Name is the author's display name.
	Name string `json:"name"`

	// Description is the story text.
	Description string `json:"description"`

	// PhotoURL points at the remote photo; it doubles as the key of the
	// locally cached image asset.
	PhotoURL string `json:"photoUrl"`

	// Lat and Lon form an optional pair: both set or both nil.
	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`

	// CreatedAt is the server-side creation time.
	CreatedAt time.Time `json:"createdAt"`
}

// HasLocation reports whether the story carries a complete coordinate pair.
func (s *Story) HasLocation() bool {
	return s.Lat != nil && s.Lon != nil
}

// NormalizeLocation enforces the both-or-none contract on coordinates.
// A half-set pair coming from a malformed payload is dropped entirely.
func (s *Story) NormalizeLocation() {
	if s.Lat == nil || s.Lon == nil {
		s.Lat = nil
		s.Lon = nil
	}
}

// PendingStory is a locally queued, not-yet-uploaded submission. It exists
// only until a successful upload deletes it; it is never mutated in place.
type PendingStory struct {
	// TempId is locally generated: "pending_<unix-ms>_<random>". The format
	// is distinguishable from server ids and collision-resistant on a device.
	TempId string

	Description string

	// Photo holds the raw captured photo bytes.
	Photo []byte

	// Lat and Lon form an optional pair: both set or both nil.
	Lat *float64
	Lon *float64

	// Token is the bearer token captured at submission time; empty means the
	// guest endpoint will be used on sync.
	Token string

	CreatedAt time.Time
}

// HasLocation reports whether the pending submission carries a coordinate pair.
func (p *PendingStory) HasLocation() bool {
	return p.Lat != nil && p.Lon != nil
}

// Submission is the input for creating a story, shared by the direct (online)
// and queued (offline) paths.
type Submission struct {
	Description string
	Photo       []byte
	Lat         *float64
	Lon         *float64
}
