package survey

import (
	"fmt"
	"strings"

	"github.com/aretw0/docent/pkg/domain"
)

// MaxSuggestions caps the visit-stats names quoted in a suggestion.
const MaxSuggestions = 3

// Attempt thresholds while no exhibit is selected.
const (
	lastSuggestionAttempt = 2
	genericAttempt        = 3
)

const (
	explicitText   = "Understood. Which specific exhibit would you like to discuss? (e.g. Faces, VR, Sandbox)"
	lidarText      = "Hey, I noticed you spent the most time at the %s. Would you like to review one of them?"
	noStatsText    = "Hey, which exhibit did you spend the most time at? Would you like to review it?"
	genericText    = "It seems I'm having trouble matching that to an exhibit. Would you like to give a review for ANY exhibit? If so, just say the name."
	forceEndText   = "It looks like you might be done for now. Thank you for visiting Data Spaces!"
	overallText    = "If you could change one thing about the whole exhibition, what would it be?"
	restartText    = "Would you like to review another exhibit? If yes, tell me which one."
	exhibitDone    = "That is all for this exhibit. Would you like to review another one?"
	defaultSummary = "The %s is an interactive installation."
)

// NextStep decides what the conversation should do next. The input session
// is never modified; the evolved copy is returned with the step.
//
// With no exhibit selected it prompts for a choice, escalating with every
// failed attempt and ending the conversation on the fourth. In overall mode
// it asks the single improvement question once. For an exhibit it asks the
// first unasked question, and once none remain it clears the selection.
func NextStep(s domain.Session, cat *domain.Catalog, suggestions []string) (domain.Session, domain.Step) {
	next := *s.Clone()

	switch {
	case !next.HasSelection():
		return next, chooseExhibit(&next, suggestions)
	case next.SelectedExhibit == domain.OverallExhibition:
		return next, overall(&next)
	default:
		return next, exhibitQuestion(&next, cat)
	}
}

func chooseExhibit(s *domain.Session, suggestions []string) domain.Step {
	if s.ForceOpenChoice {
		s.ForceOpenChoice = false
		return domain.Step{
			ID:       domain.StepSelectExplicit,
			Text:     explicitText,
			OneLiner: "The user wants to select an exhibit manually.",
		}
	}

	s.SelectionAttempts++
	switch attempts := s.SelectionAttempts; {
	case attempts <= lastSuggestionAttempt:
		return domain.Step{
			ID:       domain.StepSelectLidar,
			Text:     suggestionText(suggestions),
			OneLiner: "I have access to visitor tracking data to see where you spent your time.",
		}
	case attempts == genericAttempt:
		return domain.Step{
			ID:       domain.StepSelectGeneric,
			Text:     genericText,
			OneLiner: "I am trying to help the user start a review.",
		}
	default:
		return domain.Step{
			ID:              domain.StepForceEnd,
			Text:            forceEndText,
			OneLiner:        "The user is not engaging. End the conversation politely.",
			EndConversation: true,
		}
	}
}

func suggestionText(suggestions []string) string {
	if len(suggestions) == 0 {
		return noStatsText
	}
	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return fmt.Sprintf(lidarText, strings.Join(suggestions, ", "))
}

func overall(s *domain.Session) domain.Step {
	if !s.Asked(domain.StepOverallImprove) {
		return domain.Step{
			ID:       domain.StepOverallImprove,
			Text:     overallText,
			OneLiner: "This is Data Spaces.",
		}
	}
	s.SelectedExhibit = ""
	return domain.Step{ID: domain.StepAskRestart, Text: restartText}
}

func exhibitQuestion(s *domain.Session, cat *domain.Catalog) domain.Step {
	name := s.SelectedExhibit
	ex, _ := cat.Lookup(name)

	summary := ex.OneLiner
	if summary == "" {
		summary = fmt.Sprintf(defaultSummary, name)
	}

	for _, q := range ex.Questions {
		if !s.Asked(q.ID) {
			return domain.Step{ID: q.ID, Text: q.Text, OneLiner: summary}
		}
	}

	s.SelectedExhibit = ""
	return domain.Step{ID: domain.StepAskRestart, Text: exhibitDone, OneLiner: summary}
}
