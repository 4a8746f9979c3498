// Package prompt builds the instruction blocks sent to the oracle.
//
// Every builder is a pure function of its arguments.
package prompt
