// Package mcp exposes the conversation engine as Model Context Protocol tools
// so assistants and test harnesses can drive a visitor session.
package mcp
