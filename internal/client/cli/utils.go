package cli

import (
	"fmt"
	"strconv"
)

// parseID converts a user-typed identifier into an int64.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// orKeep returns the entered value, falling back to the current one when the
// user left the prompt blank. Used by edit flows so blank means "keep".
func orKeep(entered, current string) string {
	if entered == "" {
		return current
	}
	return entered
}
