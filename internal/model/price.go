package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Price is a non-negative money amount stored as integer cents.
// It marshals as a two-decimal string ("12.50") and accepts either a
// JSON string or a JSON number when unmarshaling.
type Price int64

// maxPriceCents keeps prices within 10 digits overall (8 before the
// decimal point, 2 after), matching the column the original data used.
const maxPriceCents = 99_999_999_99

// ParsePrice parses a decimal amount with at most two decimal places.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("price required")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("price must not be negative")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("price can have at most two decimal places")
	}
	for len(frac) < 2 {
		frac += "0"
	}

	// ParseInt accepts signs, so check for digits explicitly: a sign
	// inside either half ("0.-9") must not slip past the negativity
	// check above.
	if !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("invalid price")
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price")
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price")
	}

	cents := w*100 + f
	if cents > maxPriceCents {
		return 0, fmt.Errorf("price too large")
	}
	return Price(cents), nil
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
