// Package server holds the HTTP trigger server configuration and the
// health endpoint.
//
// The serve command exposes the sync endpoint so a run can be invoked by a
// scheduler or a serverless gateway instead of a shell. Sync routes live in
// feature/sync.
package server
