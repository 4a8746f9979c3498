package domain

// Step is the action chosen by the question-selection state machine.
type Step struct {
	// ID is a catalog question id or one of the Step* placeholders.
	ID string `json:"id"`

	// Text is the question the oracle must get an answer to.
	Text string `json:"text"`

	// OneLiner describes the exhibit (or situation) the question is about.
	OneLiner string `json:"one_liner,omitempty"`

	// EndConversation asks the caller to close instead of asking Text.
	EndConversation bool `json:"end_conversation"`
}
