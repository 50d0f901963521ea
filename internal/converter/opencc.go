package converter

import (
	"fmt"
	"log/slog"

	"github.com/liuzl/gocc"
)

// OpenCC converts with the OpenCC s2t dictionaries.
type OpenCC struct {
	cc *gocc.OpenCC
}

// NewOpenCC loads the s2t conversion. It fails if the OpenCC dictionaries
// are not available on disk.
func NewOpenCC() (*OpenCC, error) {
	cc, err := gocc.New("s2t")
	if err != nil {
		return nil, fmt.Errorf("initializing OpenCC s2t: %w", err)
	}
	return &OpenCC{cc: cc}, nil
}

// SimToTrad returns text in traditional characters, or text unchanged if
// the conversion fails.
func (c *OpenCC) SimToTrad(text string) string {
	out, err := c.cc.Convert(text)
	if err != nil {
		slog.Warn("opencc conversion failed", "text", text, "error", err)
		return text
	}
	return out
}
