package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Path validation errors.
var (
	ErrInvalidPath           = errors.New("invalid path")
	ErrBackslashInPath       = errors.New("path contains backslash")
	ErrNullByteInPath        = errors.New("path contains null byte")
	ErrInvalidPercentEscape  = errors.New("invalid percent escape sequence")
	ErrDotSegment            = errors.New("path contains dot segment")
	ErrEncodedSlashInSegment = errors.New("encoded slash (%2F) in segment")
)

// SplitPathAndQuery splits a path into path and query components.
// The query is returned without the leading "?". A fragment, if present,
// is discarded.
func SplitPathAndQuery(input string) (path, query string) {
	input, _, _ = strings.Cut(input, "#")
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// Validate checks a path (without query) for characters and escapes that
// are never accepted in a navigation target:
//   - backslash (\)
//   - NUL byte, literal or encoded (%00)
//   - invalid percent escapes (%GG, %2)
func Validate(path string) error {
	if path == "" || !strings.HasPrefix(path, "/") {
		return ErrInvalidPath
	}
	if strings.Contains(path, "\\") {
		return ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return err
		}
	}
	return nil
}

// Segments validates path and splits it into raw (still escaped) segments.
//
// The root path "/" yields no segments. A single trailing slash is ignored,
// so "/region/5/" and "/region/5" split the same way. Interior empty
// segments are kept as "" so that callers can treat "/region//rm" as a
// placeholder bound to nothing rather than silently collapsing it.
// "." and ".." segments are rejected with ErrDotSegment.
func Segments(path string) ([]string, error) {
	if err := Validate(path); err != nil {
		return nil, err
	}

	trimmed := strings.TrimPrefix(path, "/")
	if len(trimmed) > 0 && strings.HasSuffix(trimmed, "/") {
		trimmed = strings.TrimSuffix(trimmed, "/")
	}
	if trimmed == "" {
		if len(path) > 1 {
			// "//" and friends
			return []string{""}, nil
		}
		return nil, nil
	}

	segments := strings.Split(trimmed, "/")
	for _, seg := range segments {
		if seg == "." || seg == ".." {
			return nil, ErrDotSegment
		}
	}
	return segments, nil
}

// DecodeSegment percent-decodes a single path segment.
// A segment that decodes to something containing "/" (i.e. %2F was present)
// is rejected, since it would smuggle an extra level into a single value.
func DecodeSegment(segment string) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	if strings.Contains(decoded, "/") {
		return "", ErrEncodedSlashInSegment
	}
	return decoded, nil
}

// ValidateNavPath checks that a navigation target is an application-relative
// path. Navigation payloads MUST start with "/" and MUST NOT be a full URL
// ("http://", "https://") or protocol-relative ("//host").
//
// The input is returned unchanged (query included) when valid.
func ValidateNavPath(input string) (string, error) {
	if strings.HasPrefix(input, "http://") ||
		strings.HasPrefix(input, "https://") ||
		strings.HasPrefix(input, "//") {
		return "", ErrInvalidPath
	}
	path, _ := SplitPathAndQuery(input)
	if err := Validate(path); err != nil {
		return "", err
	}
	return input, nil
}

// validatePercentEscapes checks that all percent-escapes are valid.
// Valid escapes are %XX where X is a hex digit (0-9, a-f, A-F).
func validatePercentEscapes(path string) error {
	i := 0
	for i < len(path) {
		if path[i] == '%' {
			if i+2 >= len(path) {
				return ErrInvalidPercentEscape
			}
			if !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
				return ErrInvalidPercentEscape
			}
			i += 3
		} else {
			i++
		}
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
