package main

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestTerminalPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		p := &terminalPrompter{in: bufio.NewReader(strings.NewReader(tt.input)), out: &out}
		if got := p.Confirm(context.Background(), "Delete Ada?"); got != tt.want {
			t.Errorf("Confirm with input %q = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.HasPrefix(out.String(), "Delete Ada? [y/N] ") {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestTerminalPrompter_AssumeYes(t *testing.T) {
	var out bytes.Buffer
	p := &terminalPrompter{in: bufio.NewReader(strings.NewReader("")), out: &out, assumeYes: true}
	if !p.Confirm(context.Background(), "Delete Ada?") {
		t.Error("assumeYes should confirm")
	}
	p.Alert(context.Background(), "Ada already added to phonebook")
	if out.String() != "Delete Ada? yes\nAda already added to phonebook\n" {
		t.Errorf("output = %q", out.String())
	}
}
