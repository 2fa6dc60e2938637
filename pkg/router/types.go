package router

import "net/url"

// ViewID names the view a route renders. It is opaque to the router; the
// rendering layer maps it to a component.
type ViewID string

// RoutePattern binds a path template to a view.
//
// Path is a segment template such as "/region/:regionId/rm/:rmId". Segments
// starting with ":" are placeholders; every other segment is a literal.
type RoutePattern struct {
	// Path is the segment template.
	Path string `json:"path"`

	// View is the view rendered when this route matches.
	View ViewID `json:"view"`

	// Name uniquely identifies the route for reverse lookup.
	Name string `json:"name"`

	// ForwardParams passes extracted parameters to the view as inputs.
	ForwardParams bool `json:"forwardParams"`
}

// Param is a single extracted path parameter.
type Param struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Params holds extracted parameters in template order.
// Names are unique within a Params value.
type Params []Param

// Get returns the value bound to name.
func (p Params) Get(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// Has reports whether a parameter named name was extracted.
func (p Params) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Names returns the parameter names in template order.
func (p Params) Names() []string {
	names := make([]string, len(p))
	for i, param := range p {
		names[i] = param.Name
	}
	return names
}

// Map returns the parameters as a map. The map is a copy.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, param := range p {
		m[param.Name] = param.Value
	}
	return m
}

// MatchResult is the outcome of resolving a navigation target.
// It is computed per navigation and not retained by the router.
type MatchResult struct {
	// Route is the matched pattern.
	Route RoutePattern

	// Params are the extracted path parameters in template order.
	Params Params

	// Query is the parsed query string of the target, if any.
	Query url.Values
}

// Props returns the inputs handed to the mounted view. Routes that do not
// forward parameters yield an empty set.
func (m *MatchResult) Props() map[string]string {
	if m == nil || !m.Route.ForwardParams {
		return map[string]string{}
	}
	return m.Params.Map()
}

// ScrollPosition is a viewport offset in CSS pixels.
type ScrollPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Top is the scroll position every transition resets to.
var Top = ScrollPosition{}
