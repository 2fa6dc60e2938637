// Package navserver hosts the client360 shell in history mode.
//
// The server never computes dashboard data. It serves the static client
// shell for every path the route table matches, answers 404 for paths it
// does not, and exposes the route resolution the client performs:
//
//	GET /healthz          {"status":"healthy"}
//	GET /metrics          Prometheus exposition
//	GET /_routes          the route table as JSON
//	GET /_resolve?path=   the match for path, or a 404 not_found body
//	GET /_nav             WebSocket navigation session
//	GET /assets/*         shell assets
//	GET /*                index.html when the path matches a route
//
// # Navigation Sessions
//
// Each WebSocket connection gets its own router.Navigator and history.
// Client frames:
//
//	{"type":"navigate","path":"/region/5","direction":"push"}
//	{"type":"scroll","x":0,"y":1200}
//	{"type":"ping"}
//
// Server frames, in order for a successful transition:
//
//	{"type":"mount","route":"Region","view":"RegionView","path":"/region/5","props":{"regionId":"5"}}
//	{"type":"scroll","x":0,"y":0}
//
// An unmatched target produces a single not_found frame and leaves the
// session's history untouched. Reported scroll offsets are saved on the
// history entry being left and never restored.
package navserver
