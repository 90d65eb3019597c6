package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing
var (
	TestUserID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestUserID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)

// StrongApplication is a raw application the decision policy approves
// (rule score 770).
func StrongApplication() map[string]any {
	return map[string]any{
		"annualRevenue":     4000000,
		"operatingExpenses": 50000,
		"loanAmount":        500000,
		"yearsInBusiness":   8,
		"creditScore":       800,
	}
}
