package validators

import (
	"errors"
	"net/url"
	"strings"
)

var (
	ErrLocatorEmpty   = errors.New("no media locator provided")
	ErrLocatorInvalid = errors.New("media locator must be an absolute URL")
)

// LocatorValidator checks a media locator for presence and URL shape.
// The content behind it is never inspected
func LocatorValidator(l string) error {
	if strings.TrimSpace(l) == "" {
		return ErrLocatorEmpty
	}

	u, err := url.Parse(l)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrLocatorInvalid
	}

	return nil
}
