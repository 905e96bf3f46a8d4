package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
)

// FieldValue extracts a value from a loosely-shaped sheet row by trying an
// ordered list of candidate key names: one exact-match pass across the whole
// candidate list, then one case-insensitive pass. Only an empty string counts
// as missing, so numeric 0 and false survive as "0" and "false".
func FieldValue(row entity.SheetRow, candidates ...string) (string, bool) {
	for _, key := range candidates {
		if raw, ok := row[key]; ok {
			if s := stringifyCell(raw); s != "" {
				return s, true
			}
		}
	}
	for _, key := range candidates {
		for rowKey, raw := range row {
			if !strings.EqualFold(rowKey, key) {
				continue
			}
			if s := stringifyCell(raw); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// stringifyCell renders a decoded JSON cell as a string. JSON numbers arrive
// as float64; whole values must not pick up a ".000000" tail.
func stringifyCell(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
