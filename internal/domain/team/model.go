package team

import (
	"strings"

	"github.com/ghadfield32/hs-bball-players-mcp-sub003/internal/platform/identity"
)

const (
	OrgSchool = "SCHOOL"
	OrgClub   = "CLUB"
	OrgAcad   = "ACADEMY"
)

// Team is one canonical team row. SchoolUID is set when the team maps to a
// known school; club and academy teams leave it empty.
type Team struct {
	TeamUID   string
	TeamName  string
	SchoolUID string
	OrgType   string
	Country   string
	State     string
	City      string
}

// UID derives the canonical team key. The organizer component keeps two teams
// with the same name apart when they appear in independent events during the
// same season; pass "" when no organizer applies.
func UID(sourceKey, name, season, organizer string) string {
	if strings.TrimSpace(organizer) == "" {
		return identity.JoinKey(identity.MaxDimensionKeyLen, sourceKey, name, season)
	}
	return identity.JoinKey(identity.MaxDimensionKeyLen, sourceKey, name, season, organizer)
}

func NormalizeOrgType(value string) string {
	orgType := strings.ToUpper(strings.TrimSpace(value))
	switch orgType {
	case OrgSchool, OrgClub, OrgAcad:
		return orgType
	default:
		return OrgSchool
	}
}
