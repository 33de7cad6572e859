package assemble

import (
	"fmt"
	"strings"
)

// Mode selects the output format and selection policy for a summary.
type Mode string

const (
	ModeBrief    Mode = "brief"
	ModeDetailed Mode = "detailed"
	ModeBullets  Mode = "bullets"
)

// ErrUnknownMode wraps an unrecognized mode string. It indicates a
// programmer or configuration error, not bad page content.
type ErrUnknownMode struct {
	Value string
}

func (e *ErrUnknownMode) Error() string {
	return fmt.Sprintf("unknown summarization mode: %q", e.Value)
}

// ParseMode normalizes a mode string to the canonical three-value enum.
// Historical aliases map onto their canonical forms.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brief", "short":
		return ModeBrief, nil
	case "detailed", "comprehensive":
		return ModeDetailed, nil
	case "bullets", "bullet", "bulletpoints":
		return ModeBullets, nil
	default:
		return "", &ErrUnknownMode{Value: s}
	}
}
