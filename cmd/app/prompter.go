package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// terminalPrompter asks questions on stdout and reads answers from stdin.
type terminalPrompter struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func newTerminalPrompter(assumeYes bool) *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout, assumeYes: assumeYes}
}

func (p *terminalPrompter) Confirm(_ context.Context, text string) bool {
	if p.assumeYes {
		fmt.Fprintf(p.out, "%s yes\n", text)
		return true
	}
	fmt.Fprintf(p.out, "%s [y/N] ", text)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *terminalPrompter) Alert(_ context.Context, text string) {
	fmt.Fprintln(p.out, text)
}
