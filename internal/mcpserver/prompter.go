package mcpserver

import (
	"context"
	"fmt"
	"sync"
)

type answerKey struct{}

// promptLog carries the answer for a single tool call and records what
// was asked.
type promptLog struct {
	answer bool

	mu  sync.Mutex
	out []string
}

func (l *promptLog) add(line string) {
	l.mu.Lock()
	l.out = append(l.out, line)
	l.mu.Unlock()
}

func (l *promptLog) lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.out...)
}

func withAnswer(ctx context.Context, answer bool) (context.Context, *promptLog) {
	l := &promptLog{answer: answer}
	return context.WithValue(ctx, answerKey{}, l), l
}

// callPrompter answers confirmations from the tool call arguments stored
// in ctx. Without them every confirmation is declined.
type callPrompter struct{}

func (callPrompter) Confirm(ctx context.Context, text string) bool {
	l, ok := ctx.Value(answerKey{}).(*promptLog)
	if !ok {
		return false
	}
	reply := "no"
	if l.answer {
		reply = "yes"
	}
	l.add(fmt.Sprintf("%s %s", text, reply))
	return l.answer
}

func (callPrompter) Alert(ctx context.Context, text string) {
	if l, ok := ctx.Value(answerKey{}).(*promptLog); ok {
		l.add(text)
	}
}
