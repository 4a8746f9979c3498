package runtime

// hooks open every conversation; one is picked at random.
var hooks = []string{
	"Your feedback helps shape the future of this exhibition.",
	"We use your thoughts to help researchers understand visitor experiences.",
	"I'm collecting data to help developers improve their exhibit.",
	"Your perspective helps us bridge the gap between data and people.",
	"I am the digital memory of this space, learning from every visitor.",
	"Your honest critique helps us make Data Spaces better for everyone.",
}

// StartInstruction follows every greeting hook.
const StartInstruction = "Tap the button below and just say 'Yes' to begin."

// Greeting returns a random hook followed by StartInstruction.
func Greeting(intn func(n int) int) string {
	return hooks[intn(len(hooks))] + " " + StartInstruction
}
