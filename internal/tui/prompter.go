package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// promptMsg asks the model to show a modal question. The model answers
// on reply exactly once.
type promptMsg struct {
	text    string
	confirm bool
	reply   chan<- bool
}

// Prompter implements phonebook.Prompter by showing modal prompts in the
// running program. Its methods block the calling command until the user
// answers or ctx is done.
type Prompter struct {
	send func(tea.Msg)
}

// Confirm shows a yes/no question.
func (p *Prompter) Confirm(ctx context.Context, text string) bool {
	return p.ask(ctx, promptMsg{text: text, confirm: true})
}

// Alert shows a message dismissed by any key.
func (p *Prompter) Alert(ctx context.Context, text string) {
	p.ask(ctx, promptMsg{text: text})
}

func (p *Prompter) ask(ctx context.Context, msg promptMsg) bool {
	reply := make(chan bool, 1)
	msg.reply = reply
	p.send(msg)
	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	}
}
