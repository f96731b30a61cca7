package decision

import "cc-permit/internal/protocol"

// aggregate reduces a list of per-entity decisions (nil meaning "no
// rule matched") into a single decision: nil decisions become Ask, and
// the most severe decision wins. An unlisted program in an otherwise
// allowed command must not downgrade the verdict to Allow; it must
// provoke confirmation.
//
// Returns nil only when decisions is empty or every element is nil.
func aggregate(decisions []*protocol.Decision) *protocol.Decision {
	var best *protocol.Decision
	anyPresent := false
	for _, d := range decisions {
		anyPresent = anyPresent || d != nil
		effective := protocol.DecisionAsk
		if d != nil {
			effective = *d
		}
		if best == nil || effective.MoreSevere(*best) {
			b := effective
			best = &b
		}
	}
	if !anyPresent {
		return nil
	}
	return best
}

// applyModeModifier adjusts an aggregated Ask decision according to the
// session's permission mode. Allow and Deny are absolute and pass
// through unchanged.
func applyModeModifier(d protocol.Decision, mode protocol.PermissionMode) protocol.Decision {
	if d != protocol.DecisionAsk {
		return d
	}
	switch mode {
	case protocol.ModeBypassPermissions:
		return protocol.DecisionAllow
	case protocol.ModeDontAsk:
		return protocol.DecisionDeny
	default:
		return protocol.DecisionAsk
	}
}
