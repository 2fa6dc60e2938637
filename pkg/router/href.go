package router

import (
	"fmt"
	"net/url"
	"strings"
)

// Href builds the path of the named route from params.
// Every placeholder must have a non-empty value; extra keys are ignored.
// Values are path-escaped, so "a/b" becomes "a%2Fb".
//
// Example:
//
//	href, _ := table.Href("RelationshipManager", map[string]string{
//	    "regionId": "5",
//	    "rmId":     "12",
//	})
//	// href == "/region/5/rm/12"
func (t *Table) Href(name string, params map[string]string) (string, error) {
	c, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}
	if len(c.segments) == 0 {
		return "/", nil
	}

	var b strings.Builder
	for _, seg := range c.segments {
		b.WriteByte('/')
		if !seg.isParam {
			b.WriteString(seg.literal)
			continue
		}
		value := params[seg.name]
		if value == "" {
			return "", fmt.Errorf("%w: %q for route %q", ErrMissingParam, seg.name, name)
		}
		b.WriteString(url.PathEscape(value))
	}
	return b.String(), nil
}

// HrefWithQuery is like Href and appends query, if non-empty.
func (t *Table) HrefWithQuery(name string, params map[string]string, query url.Values) (string, error) {
	href, err := t.Href(name, params)
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		href += "?" + query.Encode()
	}
	return href, nil
}
