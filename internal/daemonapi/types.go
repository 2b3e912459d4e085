package daemonapi

import "time"

// Model is one entry in the daemon's local store listing.
type Model struct {
	// Full model name including the variant tag.
	// example: llama3.1:8b-instruct-q8_0
	Name string `json:"name"`
	// On-disk size in bytes.
	Size int64 `json:"size"`
	// Content digest of the model blob.
	Digest string `json:"digest"`
	// Last modification time in the local store.
	ModifiedAt time.Time `json:"modified_at"`
}

// TagsResponse wraps the list of models returned by GET /api/tags.
type TagsResponse struct {
	Models []Model `json:"models"`
}

// VersionResponse wraps GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
}
