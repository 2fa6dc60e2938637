package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Config (E100-E119)

	"E100": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Detail:     "The configuration file passed with --config does not exist.",
		Suggestion: "Omit --config to run with defaults, or point it at an existing client360.json",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or is not valid JSON.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or inconsistent with another value.",
	},

	// Route table (E200-E219)

	"E200": {
		Category:   CategoryRoutes,
		Message:    "Invalid route pattern",
		Detail:     "A route template is malformed. Templates start with \"/\", have no empty segments, and name every placeholder once.",
		Suggestion: "Write placeholders as \":name\", e.g. /region/:regionId",
	},
	"E201": {
		Category: CategoryRoutes,
		Message:  "Duplicate route name",
		Detail:   "Two routes share a name. Names must be unique so reverse lookup is unambiguous.",
	},
	"E202": {
		Category:   CategoryRoutes,
		Message:    "Unknown route name",
		Suggestion: "Run 'client360 routes' to list the registered names",
	},
	"E203": {
		Category: CategoryRoutes,
		Message:  "Missing route parameter",
		Detail:   "Every placeholder of the route needs a non-empty value.",
	},

	// Navigation (E300-E319)

	"E300": {
		Category: CategoryNavigation,
		Message:  "Route not found",
		Detail:   "No route matches the path. Matching is exact: segment counts must be equal and literals are case-sensitive.",
	},
	"E301": {
		Category:   CategoryNavigation,
		Message:    "Invalid navigation path",
		Detail:     "Navigation targets must be application-relative paths starting with \"/\".",
		Suggestion: "Drop the scheme and host, e.g. /region/5 instead of https://host/region/5",
	},
	"E302": {
		Category: CategoryNavigation,
		Message:  "No history entry",
		Detail:   "There is no entry in that direction of the session history.",
	},
	"E303": {
		Category:   CategoryNavigation,
		Message:    "Invalid navigation direction",
		Suggestion: "Use one of push, replace, back, forward",
	},
	"E304": {
		Category: CategoryNavigation,
		Message:  "Invalid navigation message",
		Detail:   "A navigation frame could not be decoded.",
	},

	// Server (E400-E419)

	"E400": {
		Category: CategoryServer,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
	},
	"E401": {
		Category: CategoryServer,
		Message:  "Shell source unavailable",
		Detail:   "The client shell could not be loaded from its directory or bucket.",
	},
	"E402": {
		Category: CategoryServer,
		Message:  "Shell asset not found",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
