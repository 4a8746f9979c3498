package domain

// OverallExhibition is the selection sentinel for feedback about the whole exhibition.
const OverallExhibition = "overall exhibition"

// MaxHistory is the capacity of the per-session message window.
const MaxHistory = 10

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Step identifiers emitted by the state machine that are not catalog questions.
const (
	StepSelectExplicit = "select_exhibit_explicit"
	StepSelectLidar    = "select_exhibit_lidar"
	StepSelectGeneric  = "select_exhibit_generic"
	StepForceEnd       = "force_end"
	StepOverallImprove = "overall_improve"
	StepAskRestart     = "ask_restart"
)

// selectPrefix groups every exhibit-selection prompt.
const selectPrefix = "select_exhibit"
