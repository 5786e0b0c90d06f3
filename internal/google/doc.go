// Package google provides OAuth2 configuration and per-account token storage
// for the Google Calendar API.
//
// Tokens are stored as JSON files named google-<account>.token in the user
// cache directory under "eventmanager". The TokenProvider interface lets the
// calendar client obtain tokens without knowing where they live.
package google
