/*
Package domain contains the core domain models of the docent survey engine.

It defines the exhibit catalog, the per-visitor session snapshot and the steps
produced by the question-selection state machine. This package is kept pure and
free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Catalog: Immutable, ordered index of exhibits and their feedback questions.
  - Session: Runtime snapshot of one visitor (selection, asked questions, history).
  - Step: What the state machine decided to ask (or that the conversation ends).
  - FeedbackRecord: Append-only audit record of answers and exhibit selections.
*/
package domain
