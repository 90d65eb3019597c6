package valueobject

import "fmt"

// RiskGrade is a letter grade A (lowest risk) to F derived from a
// 300–850 credit score.
type RiskGrade struct {
	value string
}

var (
	RiskGradeA = RiskGrade{value: "A"}
	RiskGradeB = RiskGrade{value: "B"}
	RiskGradeC = RiskGrade{value: "C"}
	RiskGradeD = RiskGrade{value: "D"}
	RiskGradeE = RiskGrade{value: "E"}
	RiskGradeF = RiskGrade{value: "F"}
)

// RiskGradeFromScore maps a credit score onto a grade.
//
//	score > 750 -> A
//	score > 700 -> B
//	score > 660 -> C
//	score > 620 -> D
//	score > 580 -> E
//	otherwise   -> F
func RiskGradeFromScore(score int) RiskGrade {
	switch {
	case score > 750:
		return RiskGradeA
	case score > 700:
		return RiskGradeB
	case score > 660:
		return RiskGradeC
	case score > 620:
		return RiskGradeD
	case score > 580:
		return RiskGradeE
	default:
		return RiskGradeF
	}
}

// NewRiskGrade parses a letter grade.
func NewRiskGrade(s string) (RiskGrade, error) {
	for _, g := range []RiskGrade{RiskGradeA, RiskGradeB, RiskGradeC, RiskGradeD, RiskGradeE, RiskGradeF} {
		if g.value == s {
			return g, nil
		}
	}
	return RiskGrade{}, fmt.Errorf("%w: %q", ErrInvalidRiskGrade, s)
}

// String returns the letter.
func (g RiskGrade) String() string { return g.value }

// IsZero returns true when not initialised.
func (g RiskGrade) IsZero() bool { return g.value == "" }
