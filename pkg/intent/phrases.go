package intent

import "strings"

var (
	navigationPhrases  = []string{"another", "other", "different", "something else", "review one", "switch"}
	terminationPhrases = []string{"bye", "stop", "exit", "quit"}
)

func containsAny(text string, phrases []string) bool {
	t := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(t, p) {
			return true
		}
	}
	return false
}

// WantsToChoose reports an explicit request to pick a different exhibit.
func WantsToChoose(text string) bool {
	return containsAny(text, navigationPhrases)
}

// WantsToLeave reports an explicit request to end the conversation.
func WantsToLeave(text string) bool {
	return containsAny(text, terminationPhrases)
}

// MentionsOverall reports feedback about the exhibition as a whole.
func MentionsOverall(text string) bool {
	return strings.Contains(strings.ToLower(text), "overall")
}
