package router

import (
	"fmt"
	"strings"
)

// ParamMarker prefixes a placeholder segment in a path template.
const ParamMarker = ":"

// segment is one compiled template segment.
type segment struct {
	// literal is the exact text to match when isParam is false.
	literal string

	// isParam marks a placeholder segment.
	isParam bool

	// name is the placeholder's parameter name.
	name string
}

// compiledRoute is a RoutePattern with its template split into segments.
type compiledRoute struct {
	pattern  RoutePattern
	segments []segment
	nparams  int
}

// compilePattern validates and splits a path template.
//
// Rules:
//   - the template starts with "/"
//   - "/" alone has zero segments
//   - no empty segments ("/region//rm" or a trailing "/")
//   - placeholders have a non-empty name, unique within the template
func compilePattern(p RoutePattern) (*compiledRoute, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: %q: empty name", ErrInvalidPattern, p.Path)
	}
	if !strings.HasPrefix(p.Path, "/") {
		return nil, fmt.Errorf("%w: %q: must start with /", ErrInvalidPattern, p.Path)
	}

	c := &compiledRoute{pattern: p}
	if p.Path == "/" {
		return c, nil
	}

	seen := make(map[string]bool)
	for _, raw := range strings.Split(p.Path[1:], "/") {
		if raw == "" {
			return nil, fmt.Errorf("%w: %q: empty segment", ErrInvalidPattern, p.Path)
		}
		if !strings.HasPrefix(raw, ParamMarker) {
			c.segments = append(c.segments, segment{literal: raw})
			continue
		}

		name := strings.TrimPrefix(raw, ParamMarker)
		if name == "" {
			return nil, fmt.Errorf("%w: %q: placeholder without a name", ErrInvalidPattern, p.Path)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q: placeholder %q repeated", ErrInvalidPattern, p.Path, name)
		}
		seen[name] = true
		c.segments = append(c.segments, segment{isParam: true, name: name})
		c.nparams++
	}
	return c, nil
}

// match compares the compiled template against decoded path segments.
// Segment counts must be equal; literals compare exactly and placeholders
// accept any non-empty value.
func (c *compiledRoute) match(segments []string) (Params, bool) {
	if len(segments) != len(c.segments) {
		return nil, false
	}
	params := make(Params, 0, c.nparams)
	for i, seg := range c.segments {
		value := segments[i]
		if seg.isParam {
			if value == "" {
				return nil, false
			}
			params = append(params, Param{Name: seg.name, Value: value})
			continue
		}
		if value != seg.literal {
			return nil, false
		}
	}
	return params, true
}

// paramNames returns the placeholder names in template order.
func (c *compiledRoute) paramNames() []string {
	names := make([]string, 0, c.nparams)
	for _, seg := range c.segments {
		if seg.isParam {
			names = append(names, seg.name)
		}
	}
	return names
}
