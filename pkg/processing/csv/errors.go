package csv

import "errors"

var (
	ErrEmptyCSV             = errors.New("empty csv")
	ErrMalformedLapTime     = errors.New("malformed lap time")
	ErrMalformedSectorTime  = errors.New("malformed sector time")
	ErrMalformedElapsedTime = errors.New("malformed elapsed time")
	ErrMalformedTimestamp   = errors.New("malformed timestamp")
	ErrUnsupportedDialect   = errors.New("unsupported dialect")
)
