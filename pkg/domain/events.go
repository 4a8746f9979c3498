package domain

import (
	"context"
	"time"
)

// RecordTypeSelect marks an exhibit-selection record. Answer records carry no type.
const RecordTypeSelect = "select"

// FeedbackRecord is one line of the append-only feedback log.
type FeedbackRecord struct {
	SessionID  string    `json:"session_id"`
	Type       string    `json:"type,omitempty"`
	Exhibit    string    `json:"exhibit"`
	QuestionID string    `json:"question_id,omitempty"`
	Answer     string    `json:"answer,omitempty"`
	Timestamp  time.Time `json:"ts"`
}

// NewAnswerRecord builds the record of a visitor answering a question.
func NewAnswerRecord(sessionID, exhibit, questionID, answer string) FeedbackRecord {
	if exhibit == "" {
		exhibit = "unknown"
	}
	return FeedbackRecord{
		SessionID:  sessionID,
		Exhibit:    exhibit,
		QuestionID: questionID,
		Answer:     answer,
	}
}

// NewSelectRecord builds the record of a visitor selecting an exhibit.
func NewSelectRecord(sessionID, exhibit string) FeedbackRecord {
	return FeedbackRecord{
		SessionID: sessionID,
		Type:      RecordTypeSelect,
		Exhibit:   exhibit,
	}
}

// CloseReason explains why a conversation was closed.
type CloseReason string

const (
	CloseTurnLimit   CloseReason = "turn_limit"
	CloseUserRequest CloseReason = "user_request"
	CloseDisengaged  CloseReason = "disengaged"
)

// TurnEvent is emitted once per processed utterance.
type TurnEvent struct {
	SessionID string
	Turn      int
	Exhibit   string
	StepID    string
}

// SelectionEvent is emitted when the active exhibit changes.
type SelectionEvent struct {
	SessionID string
	From      string
	To        string
	Verdict   string
}

// QuestionEvent is emitted when a feedback question is asked.
type QuestionEvent struct {
	SessionID  string
	Exhibit    string
	QuestionID string
}

// CloseEvent is emitted when a turn produces a closing reply.
type CloseEvent struct {
	SessionID string
	Reason    CloseReason
}

// OracleEvent is emitted when an oracle call failed and a fallback was used.
type OracleEvent struct {
	SessionID string
	Purpose   string
	Err       error
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTurn               func(context.Context, *TurnEvent)
	OnExhibitSelected    func(context.Context, *SelectionEvent)
	OnQuestionAsked      func(context.Context, *QuestionEvent)
	OnConversationClosed func(context.Context, *CloseEvent)
	OnOracleFallback     func(context.Context, *OracleEvent)
}
