package diag

// Severity orders diagnostics; Bag.HasErrors looks for SevError.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning marks recoverable problems such as an ignored cache entry.
	SevWarning
	// SevError aborts compilation (lexical and syntax errors) or loading.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lowercase form used by the short check output: "error", "warning".
func (s Severity) Label() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
