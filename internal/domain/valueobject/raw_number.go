package valueobject

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// RawNumber – a leniently typed numeric field as submitted by a caller
// ---------------------------------------------------------------------------

var (
	leadingFloat   = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingInteger = regexp.MustCompile(`^[+-]?\d+`)
	leadingHex     = regexp.MustCompile(`^([+-]?)0[xX]([0-9a-fA-F]+)`)
)

// objectText is how a JSON object or YAML mapping reads as text. It never
// parses as a number.
const objectText = "[object Object]"

// RawNumber holds a numeric field exactly as it was supplied: a JSON number,
// a string, a boolean, an array, null or nothing at all. It never fails to
// decode and is coerced to a number only when read through Float or Integer.
//
// Non-string values are first rendered as text the way a JavaScript client
// would see them: numbers in shortest form (1e3 is "1000", 5e-7 is "5e-7"),
// arrays as their elements joined by commas ([5] is "5") and objects as
// "[object Object]".
type RawNumber struct {
	text    string
	set     bool
	quoted  bool
	literal string // JSON as supplied, when it differs from text
}

// Number returns a RawNumber carrying v.
func Number(v float64) RawNumber {
	return RawNumber{text: numberText(v), set: true}
}

// Text returns a RawNumber carrying s as a string value.
func Text(s string) RawNumber {
	return RawNumber{text: s, set: true, quoted: true}
}

// IsSet reports whether the field was present and not null.
func (n RawNumber) IsSet() bool { return n.set }

// String returns the value's text form, or "" when unset.
func (n RawNumber) String() string { return n.text }

// Float parses the longest leading decimal number ("12.5kg" is 12.5).
// Unset, unparseable, non-finite and zero values yield def.
func (n RawNumber) Float(def float64) float64 {
	if !n.set {
		return def
	}
	return orDefault(parsePrefix(leadingFloat, strings.TrimSpace(n.text)), def)
}

// Integer parses the leading integer digits ("12.9" is 12), reading a
// 0x prefix as hexadecimal ("0x1A" is 26). Unset, unparseable, non-finite
// and zero values yield def. The result is returned as a float64 so
// arbitrarily long digit strings cannot overflow.
func (n RawNumber) Integer(def float64) float64 {
	if !n.set {
		return def
	}
	s := strings.TrimSpace(n.text)
	if m := leadingHex.FindStringSubmatch(s); m != nil {
		v := 0.0
		for _, d := range strings.ToLower(m[2]) {
			v = v*16 + float64(strings.IndexRune("0123456789abcdef", d))
		}
		if m[1] == "-" {
			v = -v
		}
		return orDefault(v, def)
	}
	return orDefault(parsePrefix(leadingInteger, s), def)
}

func parsePrefix(re *regexp.Regexp, s string) float64 {
	prefix := re.FindString(s)
	if prefix == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func orDefault(v, def float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// numberText renders v in the shortest form a JavaScript runtime would.
func numberText(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	if a := math.Abs(v); a >= 1e-6 && a < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// jsonText renders a decoded JSON value as text.
func jsonText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil && !math.IsInf(f, 0) {
			return v.String()
		}
		return numberText(f)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = jsonText(e)
		}
		return strings.Join(parts, ",")
	default:
		return objectText
	}
}

// UnmarshalJSON accepts any JSON value. null leaves the field unset.
func (n *RawNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = RawNumber{}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		*n = RawNumber{text: string(b), set: true, quoted: true}
		return nil
	}

	if s, ok := v.(string); ok {
		*n = Text(s)
		return nil
	}
	*n = RawNumber{text: jsonText(v), set: true}
	if n.text != string(b) {
		n.literal = string(b)
	}
	return nil
}

// MarshalJSON writes the value back in the form it was supplied.
func (n RawNumber) MarshalJSON() ([]byte, error) {
	switch {
	case !n.set:
		return []byte("null"), nil
	case n.literal != "":
		return []byte(n.literal), nil
	case n.quoted || !json.Valid([]byte(n.text)):
		return json.Marshal(n.text)
	}
	return []byte(n.text), nil
}

// yamlText renders a YAML node as text, following the same rules as JSON.
func yamlText(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return ""
		case "!!int", "!!float":
			var f float64
			if err := node.Decode(&f); err == nil {
				return numberText(f)
			}
		}
		return node.Value
	case yaml.SequenceNode:
		parts := make([]string, len(node.Content))
		for i, c := range node.Content {
			parts[i] = yamlText(c)
		}
		return strings.Join(parts, ",")
	case yaml.AliasNode:
		if node.Alias != nil {
			return yamlText(node.Alias)
		}
	}
	return objectText
}

// UnmarshalYAML accepts any node. Strings stay strings, everything else is
// rendered as text.
func (n *RawNumber) UnmarshalYAML(node *yaml.Node) error {
	switch {
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
		*n = RawNumber{}
	case node.Kind == yaml.ScalarNode && node.Tag == "!!str":
		*n = Text(node.Value)
	case node.Kind == yaml.ScalarNode:
		*n = RawNumber{text: yamlText(node), set: true}
	default:
		*n = RawNumber{text: yamlText(node), set: true, quoted: true}
	}
	return nil
}

// MarshalYAML writes numbers as numbers and everything else as strings.
func (n RawNumber) MarshalYAML() (any, error) {
	if !n.set {
		return nil, nil
	}
	if !n.quoted {
		if v, err := strconv.ParseFloat(n.text, 64); err == nil {
			return v, nil
		}
	}
	return n.text, nil
}
