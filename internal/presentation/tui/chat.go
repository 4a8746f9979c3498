package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/docent"
	"github.com/muesli/termenv"
)

// Engine is the conversation surface the chat loop drives.
type Engine interface {
	Start(ctx context.Context, sessionID string) (string, error)
	Turn(ctx context.Context, sessionID, text string) (*docent.Reply, error)
}

// QuitCommand ends the chat loop.
const QuitCommand = "/quit"

// Chat runs an interactive visitor conversation over a reader and writer.
type Chat struct {
	engine   Engine
	in       *bufio.Scanner
	out      io.Writer
	render   Renderer
	prompt   string
	showStep bool
}

// ChatOption configures a Chat.
type ChatOption func(*Chat)

// WithRenderer overrides the reply renderer.
func WithRenderer(r Renderer) ChatOption {
	return func(c *Chat) {
		c.render = r
	}
}

// WithDebug prints the step id and exhibit after every reply.
func WithDebug(on bool) ChatOption {
	return func(c *Chat) {
		c.showStep = on
	}
}

// NewChat creates a chat loop reading visitor lines from in.
func NewChat(engine Engine, in io.Reader, out io.Writer, opts ...ChatOption) *Chat {
	p := termenv.ColorProfile()
	c := &Chat{
		engine: engine,
		in:     bufio.NewScanner(in),
		out:    out,
		render: RendererFor(out),
		prompt: termenv.String("you> ").Foreground(p.Color("#34d399")).Bold().String(),
	}
	if !IsTerminal(out) {
		c.prompt = "you> "
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run greets the visitor and processes lines until the conversation closes,
// the input ends, QuitCommand is typed or ctx is cancelled.
func (c *Chat) Run(ctx context.Context, sessionID string) error {
	greeting, err := c.engine.Start(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	if err := c.say(greeting); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(c.out, c.prompt)
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}

		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}
		if line == QuitCommand {
			return nil
		}

		reply, err := c.engine.Turn(ctx, sessionID, line)
		if err != nil {
			return fmt.Errorf("turn: %w", err)
		}
		if err := c.say(reply.Text); err != nil {
			return err
		}
		if c.showStep {
			fmt.Fprintf(c.out, "  [step=%s exhibit=%q closed=%t]\n", reply.StepID, reply.Exhibit, reply.Closed)
		}
		if reply.Closed {
			return nil
		}
	}
}

func (c *Chat) say(text string) error {
	out, err := c.render(text)
	if err != nil {
		return fmt.Errorf("render reply: %w", err)
	}
	_, err = io.WriteString(c.out, out)
	return err
}
