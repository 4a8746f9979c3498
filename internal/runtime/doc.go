// Package runtime orchestrates a visitor turn: exhibit resolution, oracle
// arbitration, the survey state machine and reply generation.
package runtime
