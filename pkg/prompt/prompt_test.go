package prompt_test

import (
	"testing"

	"github.com/aretw0/docent/pkg/prompt"
	"github.com/stretchr/testify/assert"
)

func TestInterview(t *testing.T) {
	out := prompt.Interview(prompt.InterviewParams{
		Knowledge:      "- Faces: LiDAR sensors track your eyes.",
		Topic:          "Faces",
		Question:       "Did being watched feel playful or creepy?",
		OneLiner:       "LiDAR sensors track your eyes.",
		TransitionNote: "Start your reply with: 'Okay'",
	})

	assert.Contains(t, out, "- Faces: LiDAR sensors track your eyes.")
	assert.Contains(t, out, "- Current Topic: Faces")
	assert.Contains(t, out, "- Exhibit Summary: LiDAR sensors track your eyes.")
	assert.Contains(t, out, `>>> "Did being watched feel playful or creepy?"`)
	assert.Contains(t, out, "ACTIVE INTERVIEW")
	assert.Contains(t, out, "\n**SPECIAL TRANSITION:** Start your reply with: 'Okay'\n")
}

func TestInterview_NoTopicNoNote(t *testing.T) {
	out := prompt.Interview(prompt.InterviewParams{Question: "Which exhibit?"})

	assert.Contains(t, out, "- Current Topic: "+prompt.NoTopic)
	assert.NotContains(t, out, "SPECIAL TRANSITION")
	assert.NotContains(t, out, "Exhibit Summary")
}

func TestClosing(t *testing.T) {
	out := prompt.Closing("- Sandbox: An interactive display.")

	assert.Contains(t, out, "CONVERSATION ENDING")
	assert.Contains(t, out, "- Sandbox: An interactive display.")
	assert.Contains(t, out, prompt.NoTopic)
	assert.NotContains(t, out, ">>>")
}

func TestClassification(t *testing.T) {
	out := prompt.Classification("the twisty one", []string{"Faces", "Sandbox"})

	assert.Contains(t, out, `User text: "the twisty one"`)
	assert.Contains(t, out, "Exhibits: Faces, Sandbox")
	assert.Contains(t, out, `return "None"`)
}

func TestArbitration(t *testing.T) {
	out := prompt.Arbitration("VR experience", "Sandbox", "is it like the sandbox?")

	assert.Contains(t, out, "currently discussing 'VR experience'")
	assert.Contains(t, out, "Refers to 'Sandbox'")
	assert.Contains(t, out, `"SWITCH" or "STAY"`)
}
