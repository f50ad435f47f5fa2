package model

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// OrInfo falls back to info for unknown severities.
func (s Severity) OrInfo() Severity {
	if s.IsValid() {
		return s
	}
	return SeverityInfo
}
