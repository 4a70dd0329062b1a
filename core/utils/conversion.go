package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"card-tracker/core/price"
)

// Text returns *s, or "" when s is nil.
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Int renders *v, or "" when v is nil.
func Int(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// Float renders *v with two decimals, or "" when v is nil.
func Float(v *float64) string {
	if v == nil {
		return ""
	}
	return price.Format(*v)
}

// YesNo renders *b as "Yes" or "No", or "" when b is nil.
func YesNo(b *bool) string {
	if b == nil {
		return ""
	}
	if *b {
		return "Yes"
	}
	return "No"
}

// BasisPoints renders basis points as a truncated percentage ("87%").
func BasisPoints(bp *int) string {
	if bp == nil {
		return ""
	}
	return fmt.Sprintf("%d%%", *bp/100)
}

// Share renders n out of total as a truncated percentage ("60%").
func Share(n *int, total int) string {
	if n == nil || total <= 0 {
		return ""
	}
	return fmt.Sprintf("%d%%", *n*100/total)
}

// ParseTime reads an API timestamp, either RFC 3339 or a bare date.
func ParseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Reformat parses an API timestamp and renders it with layout in loc.
// Unreadable input yields "".
func Reformat(raw *string, layout string, loc *time.Location) string {
	if raw == nil {
		return ""
	}
	t, ok := ParseTime(*raw)
	if !ok {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}
