package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type SharingRepository interface {
	Save(grant SharingGrant) error
	FindGrant(ownerID, recipientID string) (*SharingGrant, error)
	FindGrantsByOwner(ownerID string) ([]SharingGrant, error)
	FindGrantsByRecipient(recipientID string) ([]SharingGrant, error)
	Delete(ownerID, recipientID string) error
}

// SharingGrant lets a recipient see (and possibly edit) an owner's records.
// At most one grant exists per (OwnerID, RecipientID) pair.
type SharingGrant struct {
	ID              string `json:"id"`
	OwnerID         string `json:"owner_id"`     // user UUID
	RecipientID     string `json:"recipient_id"` // user UUID
	PermissionLevel string `json:"permission_level"`
	// Scope is the raw persisted token sequence, a JSON array that may mix
	// numeric and textual source identifiers. nil means unrestricted.
	Scope     *string   `json:"scope"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScopeToken is one entry of a grant's scope. Tokens were historically
// serialized both as numbers and as strings, so the numeric and textual
// forms are normalized once here instead of being re-coerced at every
// comparison.
type ScopeToken struct {
	Text    string
	ID      int64
	Numeric bool
}

// ParseScopeTokens decodes a raw scope value into normalized tokens.
// Numeric-looking strings count as numeric so that "5" and 5 identify the
// same source.
func ParseScopeTokens(raw string) ([]ScopeToken, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("scope is not a JSON array: %w", err)
	}

	tokens := make([]ScopeToken, 0, len(entries))
	for _, entry := range entries {
		var num int64
		if err := json.Unmarshal(entry, &num); err == nil {
			tokens = append(tokens, ScopeToken{Text: strconv.FormatInt(num, 10), ID: num, Numeric: true})
			continue
		}
		var text string
		if err := json.Unmarshal(entry, &text); err != nil {
			return nil, fmt.Errorf("scope token %s is neither number nor string", string(entry))
		}
		text = strings.TrimSpace(text)
		if id, err := strconv.ParseInt(text, 10, 64); err == nil {
			tokens = append(tokens, ScopeToken{Text: text, ID: id, Numeric: true})
		} else {
			tokens = append(tokens, ScopeToken{Text: text})
		}
	}
	return tokens, nil
}

// writableLevels is the fixed synonym set of permission labels that allow
// mutation. Any other non-empty label, "read" included, is view-only.
var writableLevels = map[string]struct{}{
	"write":      {},
	"edit":       {},
	"read_write": {},
	"read-write": {},
	"rw":         {},
	"readwrite":  {},
	"full":       {},
	"owner":      {},
}

func IsWritableLevel(permissionLevel string) bool {
	_, ok := writableLevels[strings.ToLower(strings.TrimSpace(permissionLevel))]
	return ok
}

// PermissionMeta is the in-memory description of a grant for one
// (owner, requester) pair. It is recomputed on every access check and never
// persisted or cached.
//
// The three scope sets are nil together when the grant is unrestricted.
// When a scope is present all three are non-nil, possibly empty.
type PermissionMeta struct {
	Exists   bool
	Writable bool
	// ScopeIDs holds the numeric tokens; ScopeTexts holds every token's
	// textual form, matching schemas where the same identifier was
	// historically serialized as text.
	ScopeIDs   map[int64]struct{}
	ScopeTexts map[string]struct{}
	// ScopeNames holds normalized names of the owner's sources whose id is
	// in ScopeIDs, for name-linked matching.
	ScopeNames map[string]struct{}
}

// OwnerMeta is the self-access shortcut: owners always see and edit their
// own data.
func OwnerMeta() PermissionMeta {
	return PermissionMeta{Exists: true, Writable: true}
}

func (m PermissionMeta) Unrestricted() bool {
	return m.ScopeIDs == nil
}

// Visibility is the engine's decision for one record and one requester.
type Visibility struct {
	Visible  bool
	Editable bool
}

// EvaluateVisibility decides whether the requester may see and edit a
// record, given the permission meta loaded for the record's owner. It is a
// pure function; meta is ignored when the requester owns the record.
func EvaluateVisibility(record FinancialRecord, requesterID string, meta PermissionMeta) Visibility {
	if record.OwnerID == requesterID {
		return Visibility{Visible: true, Editable: true}
	}
	if !meta.Exists {
		return Visibility{}
	}

	visible := true
	if !meta.Unrestricted() {
		visible = linkageInScope(record.SourceID, meta) || linkageInScope(record.TargetID, meta)
		if !visible && record.Kind == "income" {
			visible = incomeNameFallback(record, meta)
		}
	}
	return Visibility{Visible: visible, Editable: visible && meta.Writable}
}

func linkageInScope(id *int64, meta PermissionMeta) bool {
	if id == nil {
		return false
	}
	if _, ok := meta.ScopeIDs[*id]; ok {
		return true
	}
	_, ok := meta.ScopeTexts[strconv.FormatInt(*id, 10)]
	return ok
}

// incomeNameFallback bridges id-based scoping to the legacy name-based
// linkage of income records: their functional counterpart is a source
// identified by TargetName, even though the stored linkage column is
// TargetID. Matching is by normalized source name.
func incomeNameFallback(record FinancialRecord, meta PermissionMeta) bool {
	_, ok := meta.ScopeNames[NormalizeName(record.TargetName)]
	return ok
}

// EvaluateNameVisibility gates entities that persist source/target names
// instead of ids, such as recurring rules. A scoped grant admits the entity
// when either stored name matches a scoped source name.
func EvaluateNameVisibility(sourceName, targetName, ownerID, requesterID string, meta PermissionMeta) Visibility {
	if ownerID == requesterID {
		return Visibility{Visible: true, Editable: true}
	}
	if !meta.Exists {
		return Visibility{}
	}

	visible := true
	if !meta.Unrestricted() {
		_, bySource := meta.ScopeNames[NormalizeName(sourceName)]
		_, byTarget := meta.ScopeNames[NormalizeName(targetName)]
		visible = bySource || byTarget
	}
	return Visibility{Visible: visible, Editable: visible && meta.Writable}
}
