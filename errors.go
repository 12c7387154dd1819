package propcheck

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissingType          = "missing_type"
	CodeInvalidType          = "invalid_type"
	CodeInvalidFormat        = "invalid_format"
	CodeInvalidBound         = "invalid_bound"
	CodeInvalidEnum          = "invalid_enum"
	CodeInvalidFlag          = "invalid_flag"
	CodeInvalidPropertyShape = "invalid_property_shape"
	CodeInvalidMimeType      = "invalid_mime_type"
	CodeInvalidMaxSize       = "invalid_max_size"
	CodeInvalidTag           = "invalid_tag"
	CodeMaxDepthExceeded     = "max_depth_exceeded"
	CodeParseError           = "parse_error"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /properties/avatar/maxSize).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, allowed sets, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"field":"minimum", "got":42})
	// for i18n and UI error display.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /properties/age
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
