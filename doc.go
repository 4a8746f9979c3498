/*
Package docent is a conversational survey engine for museum exhibits.

It walks a visitor through a fixed set of feedback questions. A language
model (the oracle) phrases each reply and settles ambiguous intent, but every
decision about which exhibit is under discussion and which question comes
next is made by a deterministic state machine.

# Concept

Each turn resolves the exhibit the visitor mentions (catalog names, a roster
of known exhibits, then a keyword table), asks the oracle only when keyword
matching is inconclusive, advances the session through the question list and
hands the oracle a single instruction block to phrase. Oracle failures never
surface to the visitor; a fixed apology is returned instead.

# Usage

	cat, err := catalog.Load("data/exhibit_questions.json")
	if err != nil {
		log.Fatal(err)
	}

	eng := docent.New(cat, openai.New(os.Getenv("OPENAI_API_KEY")),
		docent.WithRecorder(jsonl.New("data/feedback_log.jsonl")),
	)

	greeting, _ := eng.Start(ctx, "visitor-1")
	fmt.Println(greeting)

	reply, err := eng.Turn(ctx, "visitor-1", "Tell me about the Sandbox")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(reply.Text)

Sessions are held in memory by default. Use WithStore with the file or Redis
adapters to keep them across restarts, and WithLocker when several replicas
share a Redis store.
*/
package docent
