package stats

// Difficulty shifts the comparison threshold in attribute checks. It never
// changes the calculator's outputs, only how callers compare an effective
// value against a target number.
type Difficulty string

const (
	DifficultyStoryOnly Difficulty = "story-only"
	DifficultyEasy      Difficulty = "easy"
	DifficultyNormal    Difficulty = "normal"
	DifficultyHard      Difficulty = "hard"
	DifficultyUltimate  Difficulty = "ultimate"
)

// ThresholdShift returns the bonus added to the effective value before the
// comparison. Story-only mode auto-succeeds.
func (d Difficulty) ThresholdShift() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return -1
	case DifficultyUltimate:
		return -2
	default:
		return 0
	}
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyStoryOnly, DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyUltimate:
		return true
	}
	return false
}

// CheckAttribute compares an effective attribute value against a target under
// the given difficulty.
func CheckAttribute(effective, target int, d Difficulty) bool {
	if d == DifficultyStoryOnly {
		return true
	}
	return effective+d.ThresholdShift() >= target
}
