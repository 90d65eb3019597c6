package valueobject

import "fmt"

// InsightKind tags an insight as favourable or unfavourable.
type InsightKind struct {
	value string
}

const (
	insightPositive = "positive"
	insightNegative = "negative"
)

var (
	InsightPositive = InsightKind{value: insightPositive}
	InsightNegative = InsightKind{value: insightNegative}
)

// NewInsightKind creates an InsightKind from a raw string.
func NewInsightKind(s string) (InsightKind, error) {
	switch s {
	case insightPositive:
		return InsightPositive, nil
	case insightNegative:
		return InsightNegative, nil
	default:
		return InsightKind{}, fmt.Errorf("%w: %q", ErrInvalidInsightKind, s)
	}
}

// String returns the string representation.
func (k InsightKind) String() string { return k.value }

// MarshalText implements encoding.TextMarshaler.
func (k InsightKind) MarshalText() ([]byte, error) { return []byte(k.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *InsightKind) UnmarshalText(b []byte) error {
	v, err := NewInsightKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Insight is a short explanation tied to one decision rule.
type Insight struct {
	Kind InsightKind `json:"type"`
	Text string      `json:"text"`
}

// PositiveInsight returns a favourable insight.
func PositiveInsight(text string) Insight { return Insight{Kind: InsightPositive, Text: text} }

// NegativeInsight returns an unfavourable insight.
func NegativeInsight(text string) Insight { return Insight{Kind: InsightNegative, Text: text} }
