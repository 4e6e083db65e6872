package models

import "time"

// ImageAsset is a cached binary photo keyed by its remote URL. Its presence
// means the owning story's photo is viewable offline.
type ImageAsset struct {
	URL         string
	ContentType string
	Data        []byte
	FetchedAt   time.Time
}
