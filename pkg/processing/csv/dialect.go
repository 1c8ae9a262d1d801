package csv

import (
	"fmt"
	"strings"
)

// Dialect names the column convention of a timing sheet. Both dialects
// carry the same semantic data under different header names.
type Dialect string

const (
	DialectIMSA Dialect = "IMSA"
	DialectWEC  Dialect = "WEC"
)

func ParseDialect(arg string) (Dialect, error) {
	switch strings.ToUpper(strings.TrimSpace(arg)) {
	case string(DialectIMSA):
		return DialectIMSA, nil
	case string(DialectWEC):
		return DialectWEC, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDialect, arg)
	}
}

// TireHeader returns the dialect-specific header of the tire supplier
// column.
func (d Dialect) TireHeader() string {
	if d == DialectWEC {
		return "TYRES"
	}
	return "TIRES"
}
