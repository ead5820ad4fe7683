// This file holds request parsing helpers shared by the handlers: form
// field extraction, amount parsing, and input sanitization.

package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Musyoka2020-eng/Contriflow/internal/core"
)

// periodFromForm extracts year and month fields, defaulting to the
// current wall-clock period when absent.
func periodFromForm(r *http.Request) (year, month string) {
	now := time.Now()
	year = strconv.Itoa(now.Year())
	month = core.Months[int(now.Month())-1]

	if v := strings.TrimSpace(r.Form.Get("year")); v != "" {
		year = v
	}
	if v := strings.TrimSpace(r.Form.Get("month")); v != "" {
		month = v
	}
	return year, month
}

// parseAmount parses a whole-unit contribution amount. Decimal input is
// rejected; amounts in this domain are whole currency units.
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is required")
	}
	amount, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a whole number", s)
	}
	if amount < 0 {
		return 0, core.ErrInvalidAmount
	}
	return amount, nil
}

// parseIndex parses a contribution row index from a path value.
func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("invalid row index %q", s)
	}
	return idx, nil
}

// sanitizeInput trims whitespace and strips control characters except
// tab, newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// boolField reads a checkbox-style form field.
func boolField(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.Form.Get(name))) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}
