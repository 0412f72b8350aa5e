// Package client holds the hikelog domain request functions.
//
// Client is the contract the services depend on: one method per backend
// endpoint (auth, hikes, observations). HTTPClient implements it on top of
// the API gateway. Each method builds a path, body or query, issues exactly
// one request and returns the gateway's normalized error untouched: no
// retries and no error handling of its own.
//
// File-carrying calls (register, profile update, observation create/update)
// send multipart/form-data. Binary parts are described by models.File and
// resolved from disk when the body is built.
package client
