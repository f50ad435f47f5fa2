package update

import (
	"strings"

	"github.com/sandeepkv93/todod/internal/model"
)

var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeAppleScript(s string) string {
	return appleScriptEscaper.Replace(s)
}

func severityTitle(s model.Severity) string {
	switch s {
	case model.SeveritySuccess:
		return "Done"
	case model.SeverityError:
		return "Error"
	case model.SeverityWarning:
		return "Warning"
	default:
		return "todod"
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
