/*
Package session serializes access to visitor sessions.

A Manager pairs a ports.SessionStore with a map of per-session mutexes, so
two overlapping turns for the same id run one after the other while distinct
ids proceed in parallel. For multi-replica deployments a
ports.DistributedLocker can be layered on top.
*/
package session
