/*
Package resolver maps visitor utterances to canonical exhibit names.

Matching is plain case-insensitive substring containment with a fixed
priority: catalog names, then the roster of known display names, then the
keyword table. It is deliberately naive. An utterance mentioning two
exhibits resolves to whichever is scanned first.
*/
package resolver
