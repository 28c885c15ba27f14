// Package http implements the control API of the sync adapter.
//
// It exposes route wiring, request handlers, and middleware. Operators use
// the API to trigger a sync cycle, inspect and reset the stored anchor, and
// read the cycle history. Authentication, request tracing, access logging,
// response compression, and body signature checks are handled in this
// package before requests are delegated to the service layer.
package http
