package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reAccount = regexp.MustCompile(`^\d{13}$`)
	reCVV     = regexp.MustCompile(`^\d{3}$`)
	reMobile  = regexp.MustCompile(`^\d{8}$`)
	rePIN     = regexp.MustCompile(`^\d{4}$`)
	reID      = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (product/sale/query ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 50 {
		return "", false
	}
	return s, true
}

// Category validates the product category enum.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "Recycled", "RAM", "Storage", "Motherboard":
		return s, true
	}
	return "", false
}

func AccountNumber(s string) bool { return reAccount.MatchString(strings.TrimSpace(s)) }
func CVV(s string) bool           { return reCVV.MatchString(strings.TrimSpace(s)) }
func Mobile(s string) bool        { return reMobile.MatchString(strings.TrimSpace(s)) }
func PIN(s string) bool           { return rePIN.MatchString(strings.TrimSpace(s)) }

// Source validates the ledger source tag.
func Source(s string) (string, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "Donation", "Investment":
		return s, true
	}
	return "", false
}
