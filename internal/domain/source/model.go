package source

import (
	"strings"
	"time"

	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/platform/identity"
)

const (
	TypeCircuit     = "CIRCUIT"
	TypeAssociation = "ASSOCIATION"
	TypePlatform    = "PLATFORM"
	TypePrep        = "PREP"
	TypeLeague      = "LEAGUE"
	TypeEvent       = "EVENT"
)

// Meta describes one publisher. Immutable once built; one instance per
// ingestion batch per source.
type Meta struct {
	SourceID   string
	SourceKey  string
	SourceType string
	Region     string
	Country    string
	State      string
	BaseURL    string
	FetchedAt  time.Time
}

func NormalizeType(value string) string {
	sourceType := strings.ToUpper(strings.TrimSpace(value))
	switch sourceType {
	case TypeCircuit, TypeAssociation, TypePlatform, TypePrep, TypeLeague, TypeEvent:
		return sourceType
	default:
		return TypeAssociation
	}
}

// NewMeta derives the source id from the key and normalizes the type enum.
func NewMeta(key, sourceType, region, country, state, baseURL string, fetchedAt time.Time) Meta {
	key = strings.TrimSpace(key)
	return Meta{
		SourceID:   identity.Normalize(key),
		SourceKey:  key,
		SourceType: NormalizeType(sourceType),
		Region:     strings.TrimSpace(region),
		Country:    strings.ToUpper(strings.TrimSpace(country)),
		State:      strings.ToUpper(strings.TrimSpace(state)),
		BaseURL:    strings.TrimSpace(baseURL),
		FetchedAt:  fetchedAt,
	}
}
