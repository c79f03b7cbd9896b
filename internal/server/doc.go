// Package server provides HTTP routing, middleware, and the API handlers
// for the import service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # API Surface
//
//   - POST /api/import-playlist : runs an input string through the import pipeline
//   - GET  /api/search?q=       : same dispatch chain, query-parameter form
//   - GET  /api/health          : liveness probe
//
// # Response Contract
//
// Every response carries a well-formed JSON body. Successful imports return
// the uniform [models.ImportResult]; failures return {"error": message}.
// Input problems (empty input, unsupported URL, zero extracted tracks) map
// to 400; only errors that escape the pipeline's per-item guards become 500.
//
// # Middleware Stack
//
// [RequestLogger] tags each request with a generated id and logs
// method/path/status/duration. [Recovery] turns panics into JSON 500s.
// [CORS] answers preflights and opens the API to browser clients.
package server
