package domain

import "strings"

// Message is a single entry of the conversation window.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session represents the current snapshot of one visitor's survey.
type Session struct {
	// ID is the opaque identifier the session is keyed by.
	ID string `json:"id"`

	// Messages is the sliding conversation window (at most MaxHistory entries).
	Messages []Message `json:"messages"`

	// SelectedExhibit is the exhibit under discussion, OverallExhibition, or empty.
	SelectedExhibit string `json:"selected_exhibit,omitempty"`

	// AskedQuestionIDs holds every question id already asked in this session.
	AskedQuestionIDs map[string]bool `json:"asked_question_ids"`

	// LastQuestionID associates the next utterance with the question it answers.
	LastQuestionID string `json:"last_question_id,omitempty"`

	TurnCount         int  `json:"turn_count"`
	SelectionAttempts int  `json:"selection_attempts"`
	ForceOpenChoice   bool `json:"force_open_choice,omitempty"`
}

// NewSession creates a clean session.
func NewSession(id string) *Session {
	return &Session{
		ID:               id,
		Messages:         []Message{},
		AskedQuestionIDs: make(map[string]bool),
	}
}

// Append adds a message to the window, evicting the oldest entry once full.
func (s *Session) Append(role, content string) {
	if len(s.Messages) >= MaxHistory {
		s.Messages = append(s.Messages[:0:0], s.Messages[len(s.Messages)-MaxHistory+1:]...)
	}
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// HasSelection reports whether an exhibit (or the overall sentinel) is selected.
func (s *Session) HasSelection() bool {
	return s.SelectedExhibit != ""
}

// Asked reports whether the question id was already asked.
func (s *Session) Asked(id string) bool {
	return s.AskedQuestionIDs[id]
}

// MarkAsked records a question id as asked.
func (s *Session) MarkAsked(id string) {
	if s.AskedQuestionIDs == nil {
		s.AskedQuestionIDs = make(map[string]bool)
	}
	s.AskedQuestionIDs[id] = true
}

// Clone returns a deep copy so callers can evolve state without aliasing.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Messages = append([]Message(nil), s.Messages...)
	c.AskedQuestionIDs = make(map[string]bool, len(s.AskedQuestionIDs))
	for k, v := range s.AskedQuestionIDs {
		c.AskedQuestionIDs[k] = v
	}
	return &c
}

// IsNavigational reports whether a step id is a navigation placeholder rather
// than a feedback question. Answers to these are never recorded and their ids
// never enter the asked set.
func IsNavigational(id string) bool {
	return strings.HasPrefix(id, selectPrefix) || id == StepAskRestart || id == StepForceEnd
}
