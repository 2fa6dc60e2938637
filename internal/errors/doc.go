// Package errors provides coded, actionable errors for the client360 CLI
// and navigation host.
//
// Library packages return plain sentinel errors (router.ErrNotFound,
// routepath.ErrInvalidPath, ...). At the edges (the CLI and the HTTP/WebSocket
// host) those are classified into an *Error carrying a stable code, a
// category, and a hint on how to fix the problem.
//
// # Error Codes
//
//   - E1xx config: configuration file and value errors
//   - E2xx routes: route table declaration and reverse lookup errors
//   - E3xx navigation: path resolution and history errors
//   - E4xx server: host and shell source errors
//
// # Usage
//
//	err := errors.New("E101").
//	    WithLocation("client360.json", 4, 12).
//	    WithSuggestion("Check that client360.json is valid JSON")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Invalid configuration file
//	//
//	//   client360.json:4:12
//	//
//	//        3 │   "server": {
//	//   →    4 │     "port": "8080",
//	//          │            ^
//	//        5 │   },
//	//
//	//   Hint: Check that client360.json is valid JSON
package errors
