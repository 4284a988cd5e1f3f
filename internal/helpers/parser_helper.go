package helpers

import (
	"fmt"
	"strconv"
	"strings"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// BearerToken extracts the token from an Authorization header value.
// ok is false when the header is empty or uses another scheme.
func BearerToken(header string) (token string, ok bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// BoundedInt parses s as an int within [min, max]. An empty s yields def.
func BoundedInt(s string, def, min, max int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := StringToInt(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n < min || n > max {
		return 0, fmt.Errorf("must be between %d and %d", min, max)
	}
	return n, nil
}
