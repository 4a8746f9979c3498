/*
Package survey implements the question-selection state machine.

A session is in one of three states: no exhibit selected, overall-exhibition
mode, or a specific exhibit. NextStep is the transition function. It is pure
with respect to its inputs and returns the evolved session alongside the
step to perform.
*/
package survey
