package sim

// GradeNA is reported until ten trades accumulate.
const GradeNA = "N/A"

// Grade maps a session's win rate (percent) and trade count to a letter
// grade. Thresholds are inclusive lower bounds checked top down.
func Grade(winRate float64, trades int) string {
	if trades < 10 {
		return GradeNA
	}
	switch {
	case winRate >= 75:
		return "A*"
	case winRate >= 65:
		return "A"
	case winRate >= 55:
		return "B"
	case winRate >= 45:
		return "C"
	case winRate >= 35:
		return "D"
	default:
		return "F"
	}
}
