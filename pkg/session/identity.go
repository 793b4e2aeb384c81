package session

import (
	"fmt"
	"regexp"
	"strconv"
)

// RunIdentity names one recording session: the physical unit and the run.
type RunIdentity struct {
	UnitID    string // normalized unit_XXXX form
	SessionID string
}

var (
	unitRunPattern = regexp.MustCompile(`(?i)^UNIT_(\d+)_RUN_(\d+)`)
	runPattern     = regexp.MustCompile(`(?i)^RUN_(\d+)`)
)

// DefaultUnitID is used when the folder name carries no unit token.
const DefaultUnitID = "unit_0001"

// ParseRunIdentity derives the identity from a run directory's folder name.
// UNIT_7_RUN_3 and UNIT_007_RUN_003 both normalize to unit_0007 / RUN_003;
// a bare RUN_5 gets the default unit; anything else keeps the folder name as
// the session id.
func ParseRunIdentity(folderName string) RunIdentity {
	if m := unitRunPattern.FindStringSubmatch(folderName); m != nil {
		unit, _ := strconv.Atoi(m[1])
		run, _ := strconv.Atoi(m[2])
		return RunIdentity{
			UnitID:    fmt.Sprintf("unit_%04d", unit),
			SessionID: fmt.Sprintf("RUN_%03d", run),
		}
	}

	if m := runPattern.FindStringSubmatch(folderName); m != nil {
		run, _ := strconv.Atoi(m[1])
		return RunIdentity{
			UnitID:    DefaultUnitID,
			SessionID: fmt.Sprintf("RUN_%03d", run),
		}
	}

	return RunIdentity{UnitID: DefaultUnitID, SessionID: folderName}
}
