// Package server hosts the temporary localhost HTTP server used by the
// login flow.
//
// When the user runs the login command, a server starts on the configured
// host and port, receives the OAuth2 authorization-code callback from
// Spotify, exchanges the code for a token, and shuts down. The
// [CallbackHandler] validates the state parameter and processes at most one
// callback; [Flow] ties the listener lifecycle to the surrounding context so
// an abandoned login does not leave a server behind.
package server
