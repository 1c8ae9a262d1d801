package csv

import "strings"

// SplitWECName splits a packed "First Middle LAST" name into first and
// last name. A token belongs to the last name when it equals its own
// uppercase form; relative order within each bucket is preserved.
// Heuristic only: an all-caps first name ends up in the last name.
func SplitWECName(full string) (firstName, lastName string) {
	var first, last []string
	for _, token := range strings.Fields(full) {
		if token == strings.ToUpper(token) {
			last = append(last, token)
		} else {
			first = append(first, token)
		}
	}
	return strings.Join(first, " "), strings.Join(last, " ")
}
