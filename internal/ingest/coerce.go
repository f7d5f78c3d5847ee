package ingest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// toNumber coerces a cell value to float64, degrading to 0 for anything that
// does not parse. Thousands separators and stray currency symbols are
// stripped first; malformed cells must not abort ingestion.
func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		s := strings.TrimSpace(n)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimPrefix(s, "₹")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// toString coerces a cell value to a trimmed string, degrading to "" for nil.
// Numeric cells keep their shortest decimal representation.
func toString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

func sortKeys(keys []string) {
	sort.Strings(keys)
}
