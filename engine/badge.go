package engine

// BadgeContext is the user-aggregate snapshot badges are evaluated against.
type BadgeContext struct {
	StreakDays     int
	TotalCheckIns  int
	GoalsCompleted int
}

// CriteriaMet evaluates one catalog criterion against the context. Unknown
// criteria types never match.
func CriteriaMet(criteriaType string, criteriaValue int, ctx BadgeContext) bool {
	switch criteriaType {
	case "streak_days":
		return ctx.StreakDays >= criteriaValue
	case "total_check_ins":
		return ctx.TotalCheckIns >= criteriaValue
	case "goals_completed":
		return ctx.GoalsCompleted >= criteriaValue
	default:
		return false
	}
}

// BadgeSpec is the slim catalog projection the evaluator scans.
type BadgeSpec struct {
	ID            uint
	Slug          string
	CriteriaType  string
	CriteriaValue int
}

// NewlyEarned scans the catalog and returns badges whose criteria the context
// now meets, skipping ids already in earned. Evaluating the same context
// against the same earned set twice can never surface a badge twice.
func NewlyEarned(catalog []BadgeSpec, earned map[uint]struct{}, ctx BadgeContext) []BadgeSpec {
	var out []BadgeSpec
	for _, b := range catalog {
		if _, ok := earned[b.ID]; ok {
			continue
		}
		if CriteriaMet(b.CriteriaType, b.CriteriaValue, ctx) {
			out = append(out, b)
		}
	}
	return out
}

// BadgeProgress returns the relevant aggregate and the capped completion
// percentage toward an unearned badge.
func BadgeProgress(criteriaType string, criteriaValue int, ctx BadgeContext) (current int, percent float64) {
	switch criteriaType {
	case "streak_days":
		current = ctx.StreakDays
	case "total_check_ins":
		current = ctx.TotalCheckIns
	case "goals_completed":
		current = ctx.GoalsCompleted
	}
	if criteriaValue <= 0 {
		return current, 100
	}
	percent = float64(current) / float64(criteriaValue) * 100
	if percent > 100 {
		percent = 100
	}
	return current, percent
}
