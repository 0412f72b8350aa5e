// Package cli provides the interactive hikelog command-line client.
//
// The App wires the auth, hike and observation services into a REPL. At
// startup the stored session is restored (an expired token is dropped and
// the user is asked to log in); afterwards every command runs one service
// call and renders the result.
//
// Errors are rendered by shape: field errors as "- field: msg" lines, all
// others as a single "error: msg" line. A 401 on a signed-in session clears
// it and sends the user back to login.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
