package wellbeing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Normalize coerces an untrusted candidate into a canonical record.
// Every malformed field is replaced by its default; it never fails.
func Normalize(c Candidate) AnalysisRecord {
	return AnalysisRecord{
		Mood:            textOr(c["mood"], DefaultMood),
		StressLevel:     levelOr(c["stressLevel"], DefaultLevel),
		WorkloadLevel:   levelOr(c["workloadLevel"], DefaultLevel),
		Tags:            listOr(c["tags"], MaxTags, []string{}),
		Recommendations: listOr(c["recommendations"], MaxRecommendations, DefaultRecommendations),
		Summary:         textOr(c["summary"], DefaultSummary),
	}
}

// textOr keeps any truthy value; strings verbatim, anything else as JSON text.
func textOr(v any, def string) string {
	if isFalsy(v) {
		return def
	}
	if s := itemText(v); s != "" {
		return s
	}
	return def
}

func isFalsy(v any) bool {
	switch n := v.(type) {
	case nil:
		return true
	case string:
		return n == ""
	case bool:
		return !n
	case int:
		return n == 0
	case int32:
		return n == 0
	case int64:
		return n == 0
	case float32:
		return n == 0 || math.IsNaN(float64(n))
	case float64:
		return n == 0 || math.IsNaN(n)
	case json.Number:
		f, err := n.Float64()
		return err == nil && f == 0
	default:
		return false
	}
}

func levelOr(v any, def int) int {
	parsed, ok := parseLevel(v)
	if !ok {
		return def
	}
	return clampLevel(parsed)
}

func clampLevel(v int) int {
	if v < MinLevel {
		return MinLevel
	}
	if v > MaxLevel {
		return MaxLevel
	}
	return v
}

// parseLevel truncates numbers toward zero and reads the leading integer of numeric text.
// A list is read through its first element.
func parseLevel(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return saturate(float64(n)), true
	case float32:
		return fromFloat(float64(n))
	case float64:
		return fromFloat(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return fromFloat(f)
	case string:
		return leadingInt(n)
	case []any:
		if len(n) == 0 {
			return 0, false
		}
		return parseLevel(n[0])
	case []string:
		if len(n) == 0 {
			return 0, false
		}
		return leadingInt(n[0])
	default:
		return 0, false
	}
}

// fromFloat truncates f. Magnitudes that print in exponent form (>= 1e21 or
// < 1e-6) are read from that text, so 1.5e21 gives 1 and 5e-7 gives 5.
func fromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if abs := math.Abs(f); abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		return leadingInt(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return saturate(math.Trunc(f)), true
}

func saturate(f float64) int {
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

// leadingInt accepts "7", " 8/10", "-3", "6.5 out of 10", "0x1A"; rejects "high" or "".
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	if rest := s[end:]; len(rest) >= 2 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X') {
		return leadingHex(s[:end], rest[2:])
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only overflow reaches here.
		if s[0] == '-' {
			return math.MinInt32, true
		}
		return math.MaxInt32, true
	}
	return saturateInt(n), true
}

// leadingHex reads the hex digits after a 0x prefix; the prefix alone is not a number.
func leadingHex(sign, s string) (int, bool) {
	end := 0
	for end < len(s) && isHexDigit(s[end]) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 16, 64)
	if err != nil {
		n = math.MaxInt64
	}
	if sign == "-" {
		n = -n
	}
	return saturate(float64(n)), true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func saturateInt(n int) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return n
}

// listOr keeps the first max elements of a sequence, rendering non-text items as JSON.
func listOr(v any, max int, def []string) []string {
	switch items := v.(type) {
	case []string:
		n := min(len(items), max)
		out := make([]string, n)
		copy(out, items[:n])
		return out
	case []any:
		n := min(len(items), max)
		out := make([]string, 0, n)
		for _, item := range items[:n] {
			out = append(out, itemText(item))
		}
		return out
	default:
		out := make([]string, len(def))
		copy(out, def)
		return out
	}
}

func itemText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
