// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation for the sync trigger.
//   - rayid: assigns a request ID to every request and echoes it in the
//     response headers so log lines can be correlated.
package middleware
