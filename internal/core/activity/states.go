package activity

import (
	"github.com/colonyops/squadview/internal/core/logparse"
	"github.com/colonyops/squadview/internal/core/roster"
)

// MemberStates maps every participant across all entries to working or
// idle. Participants of the entry with the lexically greatest date are
// working; everyone else is idle.
//
// When several entries share the maximum date, the attribution follows
// slice order: the first such entry wins. The log format carries no
// intra-day ordering to break the tie with.
func MemberStates(entries []logparse.Entry) map[string]roster.Status {
	states := make(map[string]roster.Status)
	if len(entries) == 0 {
		return states
	}

	latest := entries[0]
	for _, entry := range entries[1:] {
		if entry.Date > latest.Date {
			latest = entry
		}
	}

	for _, entry := range entries {
		for _, name := range entry.Participants {
			if _, ok := states[name]; !ok {
				states[name] = roster.StatusIdle
			}
		}
	}
	for _, name := range latest.Participants {
		states[name] = roster.StatusWorking
	}

	return states
}
