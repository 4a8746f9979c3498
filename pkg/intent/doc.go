/*
Package intent turns oracle replies into tagged outcomes.

The raw text the oracle returns is parsed here and nowhere else:
DetectExhibit yields a Detection and Arbitrate yields a Verdict with its
transition note. The phrase helpers cover the keyword-only intents
(navigation, termination, overall feedback).
*/
package intent
