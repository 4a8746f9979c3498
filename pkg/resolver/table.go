package resolver

// Keyword maps a lowercase keyword or phrase to a canonical exhibit name.
type Keyword struct {
	Phrase  string
	Exhibit string
}

// Table is an ordered keyword table. Earlier entries win.
type Table []Keyword

// Group expands phrases for a single exhibit, preserving their order.
func Group(exhibit string, phrases ...string) Table {
	t := make(Table, 0, len(phrases))
	for _, p := range phrases {
		t = append(t, Keyword{Phrase: p, Exhibit: exhibit})
	}
	return t
}

// Concat joins tables in order.
func Concat(tables ...Table) Table {
	var out Table
	for _, t := range tables {
		out = append(out, t...)
	}
	return out
}

// DefaultTable returns the keyword table of the Data Spaces exhibition.
func DefaultTable() Table {
	return Concat(
		Group("D4A", "d4a", "computer", "calculator", "cigar", "1963"),
		Group("Asan.AI", "asan", "ai", "neural", "network", "machine learning"),
		Group("Swarming bacteria", "bacteria", "swarm", "liquid"),
		Group("Chatbot", "bot", "chat", "smart"),
		Group("Circuit Flowfields", "circuit", "flow", "supercomputer", "visualization"),
		Group("Complex calculations", "complex", "cells", "tissue", "biology"),
		Group("Complexity Explorables", "explorables", "sliders", "control"),
		Group("Data traces", "data traces", "profile", "interests", "exposed"),
		Group("Dresden mapping", "dresden", "mapping", "flood", "city", "twin"),
		Group("Faces", "faces", "eyes", "mask", "surveillance", "watch"),
		Group("Film Forms", "film", "movie", "script", "sculpture"),
		Group("Hyperuniformity", "hyperuniformity", "crystal", "disorder"),
		Group("Magic Mirror", "mirror", "clothes", "fashion", "wear", "try on"),
		Group("Mathematical models", "math", "model", "equation"),
		Group("Retro Reboot", "retro", "reboot", "punch", "tape", "strip"),
		Group("Sandbox", "sand", "box", "dig", "landscape"),
		Group("Seamless pattern", "seamless", "pattern", "shirt", "t-shirt", "fabric"),
		Group("Server cabinet", "server", "cabinet", "noise", "heat", "loud"),
		Group("Server kit", "kit", "blocks", "build", "puzzle"),
		Group("Time travel", "time", "travel", "history", "decade"),
		Group("Traces", "traces", "path", "movement", "lidar"),
		Group("VR experience", "vr", "virtual", "headset", "dizzy"),
	)
}

// DefaultRoster returns every exhibit display name, used when the catalog
// does not define an exhibit.
func DefaultRoster() []string {
	return []string{
		"D4A", "Asan.AI", "Swarming bacteria", "Chatbot", "Circuit Flowfields",
		"Complex calculations", "Complexity Explorables", "Data traces", "Dresden mapping",
		"Faces", "Film Forms", "Hyperuniformity", "Magic Mirror", "Mathematical models",
		"Physarum", "Retro Reboot", "Sandbox", "Seamless pattern", "Server cabinet",
		"Server kit", "Time travel", "Traces", "VR experience",
	}
}
