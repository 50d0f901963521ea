// Package converter renders simplified Chinese text in other scripts.
package converter

import (
	"fmt"
	"strings"
)

// TextConverter converts simplified Chinese text to traditional characters.
type TextConverter interface {
	SimToTrad(text string) string
}

// New returns the converter registered under kind. An empty kind or "none"
// returns nil, meaning traditional output is disabled.
func New(kind string) (TextConverter, error) {
	switch strings.ToLower(kind) {
	case "", "none":
		return nil, nil
	case "opencc":
		c, err := NewOpenCC()
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown converter %q", kind)
	}
}
