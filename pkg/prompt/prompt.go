package prompt

import (
	"fmt"
	"strings"
)

// NoTopic is the current-topic label before any exhibit is selected.
const NoTopic = "General (No exhibit selected)"

const persona = `
You are the embodied subconscious of the 'Data Spaces' exhibition.
Your goal is to collect specific feedback from the visitor.

Global Exhibition Knowledge (Use this to answer factual questions):
%s

Context:
- Current Topic: %s
`

const closingTask = `
Current Status: CONVERSATION ENDING.
Task:
1. Review the conversation history.
2. Generate a 2-sentence closing.
   - If they gave feedback, summarize it ("Thanks for your thoughts on the VR").
   - If not, just say thanks.
3. End politely. Do NOT ask any new questions.
`

const interviewTask = `
Current Status: ACTIVE INTERVIEW.

Your Mandatory Goal:
You MUST get an answer to this specific question:
>>> "%s"

INSTRUCTIONS:
1. **Answer First:** If the user asked a question (e.g., "How does it work?"), answer it clearly using the 'Global Exhibition Knowledge' above.
2. **Transition Immediately:** After answering, you MUST ask the Target Question above.
3. **Negative Constraints:**
   - Do NOT ask "Do you want to know more?"
   - Do NOT ask "Is there anything else?"
   - Do NOT ask "Does that make sense?"
   - ONLY ask the Target Question.

Example Interaction:
User: "What is Faces?"
You: "Faces uses LiDAR sensors to track your eyes. Did seeing that feel playful or creepy?"
(Notice how you answered, then immediately pivoted to the feedback question).
`

// InterviewParams are the inputs of a reply-generation instruction.
type InterviewParams struct {
	// Knowledge is the rendered exhibition knowledge base.
	Knowledge string
	// Topic is the selected exhibit; empty means none.
	Topic string
	// Question is the target question the reply must ask.
	Question string
	// OneLiner describes the exhibit or situation the question is about.
	OneLiner string
	// TransitionNote tells the oracle how to acknowledge a switch or stay.
	TransitionNote string
}

func header(knowledge, topic string) string {
	if topic == "" {
		topic = NoTopic
	}
	return fmt.Sprintf(persona, knowledge, topic)
}

// Interview builds the instruction for an active-interview reply.
func Interview(p InterviewParams) string {
	var b strings.Builder
	b.WriteString(header(p.Knowledge, p.Topic))
	if p.OneLiner != "" {
		fmt.Fprintf(&b, "- Exhibit Summary: %s\n", p.OneLiner)
	}
	fmt.Fprintf(&b, interviewTask, p.Question)
	if p.TransitionNote != "" {
		fmt.Fprintf(&b, "\n**SPECIAL TRANSITION:** %s\n", p.TransitionNote)
	}
	return b.String()
}

// Closing builds the instruction for a closing reply. It never carries a
// target question.
func Closing(knowledge string) string {
	return header(knowledge, "") + closingTask
}

// Classification asks the oracle to pick one name from a closed set.
func Classification(text string, names []string) string {
	return fmt.Sprintf(`
You are a classifier.
User text: "%s"

Task: Does this text refer to one of these exhibits?
Exhibits: %s

Output: Return ONLY the exact exhibit name. If unsure or no match, return "None".
`, text, strings.Join(names, ", "))
}

// Arbitration asks the oracle whether a mention of another exhibit is a
// real topic switch.
func Arbitration(current, detected, text string) string {
	return fmt.Sprintf(`
Context: The user is currently discussing '%s'.
User Input: "%s"
Detected Keyword: Refers to '%s'.
Task: Determine if the user wants to SWITCH to '%s' or STAY on '%s' (referencing comparison).
Output: Return exactly "SWITCH" or "STAY".
`, current, text, detected, detected, current)
}
