package matchengine

import (
	"cc-permit/internal/command"
	"cc-permit/internal/protocol"
	"cc-permit/internal/rule"
)

// LookupBash checks a command segment against a bash config's three
// tiers in deny, ask, allow order and returns the decision of the first
// tier with a matching rule, or nil if no rule in any tier matches.
func LookupBash(cfg *rule.BashConfig, seg command.Segment) *protocol.Decision {
	if cfg == nil {
		return nil
	}
	if d := firstMatch(cfg.Deny, seg, protocol.DecisionDeny); d != nil {
		return d
	}
	if d := firstMatch(cfg.Ask, seg, protocol.DecisionAsk); d != nil {
		return d
	}
	if d := firstMatch(cfg.Allow, seg, protocol.DecisionAllow); d != nil {
		return d
	}
	return nil
}

func firstMatch(rules []rule.BashRule, seg command.Segment, decision protocol.Decision) *protocol.Decision {
	for _, r := range rules {
		if MatchesBash(r, seg.Program, seg.Args) {
			d := decision
			return &d
		}
	}
	return nil
}
