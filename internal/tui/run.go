package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starford/phonebook/internal/phonebook"
)

// Run shows the phonebook for remote until the user quits or ctx is done.
func Run(ctx context.Context, remote phonebook.Remote, opts ...phonebook.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog, _ := newProgram(ctx, remote, []tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return runProgram(prog)
}

// newProgram wires an App for remote to a bubbletea program. Prompts and
// state changes reach the model as messages.
func newProgram(ctx context.Context, remote phonebook.Remote, progOpts []tea.ProgramOption, opts ...phonebook.Option) (*tea.Program, *phonebook.App) {
	prompter := &Prompter{}
	opts = append(opts, phonebook.WithPrompter(prompter))
	app := phonebook.New(remote, opts...)

	progOpts = append(progOpts, tea.WithContext(ctx))
	prog := tea.NewProgram(NewModel(ctx, app), progOpts...)
	prompter.send = prog.Send
	// Listeners also fire from inside Update, where Send would block the
	// event loop waiting on itself.
	app.OnChange(func(phonebook.State) { go prog.Send(stateMsg{}) })
	return prog, app
}

func runProgram(prog *tea.Program) error {
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
