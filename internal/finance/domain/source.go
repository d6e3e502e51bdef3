package domain

import "strings"

type Source struct {
	ID      int64  `json:"id"`
	OwnerID string `json:"owner_id"` // user UUID
	Name    string `json:"name"`
}

type Target struct {
	ID      int64  `json:"id"`
	OwnerID string `json:"owner_id"` // user UUID
	Name    string `json:"name"`
}

type SourceRepository interface {
	Save(source *Source) error
	FindByOwner(ownerID string) ([]Source, error)
	FindByID(sourceID int64) (*Source, error)
	NamesForIDs(ownerID string, sourceIDs []int64) ([]string, error)
	ExistsForOwner(sourceID int64, ownerID string) (bool, error)
	NameExistsForOwner(ownerID, normalizedName string) (bool, error)
	Update(source Source) error
	Delete(sourceID int64, ownerID string) error
}

type TargetRepository interface {
	Save(target *Target) error
	FindByOwner(ownerID string) ([]Target, error)
	FindByID(targetID int64) (*Target, error)
	ExistsForOwner(targetID int64, ownerID string) (bool, error)
	NameExistsForOwner(ownerID, normalizedName string) (bool, error)
	Update(target Target) error
	Delete(targetID int64, ownerID string) error
}

// NormalizeName is the canonical form used for per-owner uniqueness checks
// and for scope name matching: trimmed and lowercased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
