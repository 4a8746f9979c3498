/*
Package ports defines the driven ports (interfaces) for the docent engine.

These interfaces decouple the survey logic from external implementations, allowing
the engine to work with various session stores, oracles and feedback sinks.

# Key Interfaces

  - SessionStore: Responsible for persisting and loading visitor Sessions.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
  - Oracle: Opaque text-completion service used for phrasing and classification.
  - FeedbackRecorder: Append-only sink for answers and exhibit selections.
  - VisitStats: Optional source of the most-visited exhibits.
  - Transcriber / Synthesizer: Speech pass-through adapters.
*/
package ports
