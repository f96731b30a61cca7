package decision

import (
	"fmt"
	"strings"

	"cc-permit/internal/protocol"
)

// appName prefixes every reason string this engine produces.
const appName = "claude-permissions-hook"

// buildReason assembles the reason string for a bash evaluation.
// programs and perProgram are parallel; preModifier is the aggregated
// decision before the mode modifier was applied, final is after.
func buildReason(final, preModifier protocol.Decision, programs []string, perProgram []*protocol.Decision) string {
	switch final {
	case protocol.DecisionAllow:
		return fmt.Sprintf("%s: allowed (%s)", appName, strings.Join(programs, ", "))

	case protocol.DecisionDeny:
		trigger := findTrigger(programs, perProgram, preModifier)
		if preModifier != protocol.DecisionDeny {
			return fmt.Sprintf("%s: '%s' denied by dontAsk mode%s", appName, trigger, multiSuffix(programs))
		}
		if len(programs) == 1 {
			return fmt.Sprintf("%s: '%s' is in your deny list", appName, trigger)
		}
		return fmt.Sprintf("%s: '%s' is denied (in: %s)", appName, trigger, strings.Join(programs, ", "))

	default: // Ask
		trigger := findTrigger(programs, perProgram, preModifier)
		return fmt.Sprintf("%s: '%s' requires confirmation%s", appName, trigger, multiSuffix(programs))
	}
}

func multiSuffix(entities []string) string {
	if len(entities) <= 1 {
		return ""
	}
	return fmt.Sprintf(" (in: %s)", strings.Join(entities, ", "))
}

// findTrigger picks the entity to blame: the first whose per-entity
// decision equals the pre-modifier aggregated decision, or, if that
// target is Ask and nothing matched explicitly (the unlisted-program
// case), the first entity with no opinion at all.
func findTrigger(entities []string, perEntity []*protocol.Decision, target protocol.Decision) string {
	for i, d := range perEntity {
		if d != nil && *d == target {
			return entities[i]
		}
	}
	if target == protocol.DecisionAsk {
		for i, d := range perEntity {
			if d == nil {
				return entities[i]
			}
		}
	}
	if len(entities) > 0 {
		return entities[0]
	}
	return ""
}

// buildFileReason assembles the reason string for a file-tool
// evaluation. It always names the operation, since a single file-tool
// invocation evaluates one operation across possibly several paths.
func buildFileReason(final, preModifier protocol.Decision, paths []string, perPath []*protocol.Decision, op protocol.FileOperation) string {
	switch final {
	case protocol.DecisionAllow:
		return fmt.Sprintf("%s: allowed %s (%s)", appName, op, strings.Join(paths, ", "))

	case protocol.DecisionDeny:
		trigger := findTrigger(paths, perPath, preModifier)
		if preModifier != protocol.DecisionDeny {
			return fmt.Sprintf("%s: '%s' denied by dontAsk mode (%s)", appName, trigger, op)
		}
		return fmt.Sprintf("%s: '%s' denied by file rules (%s)", appName, trigger, op)

	default: // Ask
		trigger := findTrigger(paths, perPath, preModifier)
		return fmt.Sprintf("%s: '%s' requires confirmation (%s)", appName, trigger, op)
	}
}
