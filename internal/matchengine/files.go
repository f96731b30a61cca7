package matchengine

import (
	"cc-permit/internal/domain"
	"cc-permit/internal/pathmatch"
	"cc-permit/internal/protocol"
	"cc-permit/internal/rule"
)

// LookupFiles checks a normalized path and operation against a files
// config's three tiers in deny, ask, allow order.
//
// Before that walk, every rule for the given operation across all three
// tiers is checked for a home-expansion error: if any exists, the lookup
// fails closed to Ask regardless of which path is being checked, since a
// broken pattern might have been meant to cover it.
func LookupFiles(cfg *rule.FilesConfig, path domain.NormalizedPath, op protocol.FileOperation, cwd string) *protocol.Decision {
	if cfg == nil {
		return nil
	}

	if hasExpansionError(cfg.Deny, op) || hasExpansionError(cfg.Ask, op) || hasExpansionError(cfg.Allow, op) {
		d := protocol.DecisionAsk
		return &d
	}

	if matchesAnyRule(cfg.Deny, path, op, cwd, true) {
		d := protocol.DecisionDeny
		return &d
	}
	if matchesAnyRule(cfg.Ask, path, op, cwd, true) {
		d := protocol.DecisionAsk
		return &d
	}
	if matchesAnyRule(cfg.Allow, path, op, cwd, false) {
		d := protocol.DecisionAllow
		return &d
	}
	return nil
}

func hasExpansionError(rules []rule.FileRule, op protocol.FileOperation) bool {
	for _, r := range rules {
		if _, ok := r.Operations[op]; !ok {
			continue
		}
		if r.HomeExpansionErr != nil {
			return true
		}
	}
	return false
}

// matchesAnyRule reports whether any rule covering op matches path,
// substituting "<cwd>" into the rule's home-expanded pattern before the
// glob comparison. A glob compile/match error is treated as
// errorMeansMatch: true for deny/ask (restrictive, fail closed to a
// match), false for allow (an allow rule never silently grants on a
// broken pattern).
func matchesAnyRule(rules []rule.FileRule, path domain.NormalizedPath, op protocol.FileOperation, cwd string, errorMeansMatch bool) bool {
	for _, r := range rules {
		if _, ok := r.Operations[op]; !ok {
			continue
		}
		if r.HomeExpansionErr != nil {
			continue
		}
		pattern := pathmatch.ExpandCwd(r.HomeExpandedPattern, cwd)
		ok, err := (pathmatch.Pattern{Raw: pattern}).Match(string(path))
		if err != nil {
			if errorMeansMatch {
				return true
			}
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
