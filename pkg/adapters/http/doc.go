// Package http serves the conversation engine and the speech adapters over a
// JSON API for kiosk front-ends.
package http
