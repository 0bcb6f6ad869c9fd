package competition

import (
	"strings"

	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/platform/identity"
)

const (
	LevelHS   = "HS"
	LevelPrep = "PREP"

	GenderMale   = "M"
	GenderFemale = "F"
)

// Competition is one tournament or league season from one source.
type Competition struct {
	CompetitionUID string
	Name           string
	Circuit        string
	Level          string
	Gender         string
	AgeGroup       string
	Season         string
	Country        string
	State          string
}

// UID derives the canonical competition key. Identical
// (source, name, season) inputs always collide to one key.
func UID(sourceKey, name, season string) string {
	return identity.JoinKey(identity.MaxDimensionKeyLen, sourceKey, name, season)
}

func NormalizeLevel(value string) string {
	level := strings.ToUpper(strings.TrimSpace(value))
	switch {
	case level == "":
		return LevelHS
	case level == LevelHS || level == LevelPrep:
		return level
	case strings.HasPrefix(level, "U") && len(level) <= 3:
		// Age-banded circuits: U14 through U21.
		return level
	default:
		return LevelHS
	}
}

func NormalizeGender(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "F", "W", "G", "GIRLS", "WOMEN", "FEMALE":
		return GenderFemale
	default:
		return GenderMale
	}
}
