package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"Stronghold/internal/amenity"
)

// lockedWriter 让提示符与后台叙述不会交错写到一半。
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newLockedWriter(w io.Writer) *lockedWriter {
	return &lockedWriter{w: w}
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type printNarrator struct {
	out io.Writer
}

func (n printNarrator) Narrate(ctx context.Context, line string) {
	fmt.Fprintf(n.out, "\n* %s\n", line)
}

type multiNarrator []amenity.Narrator

func (m multiNarrator) Narrate(ctx context.Context, line string) {
	for _, n := range m {
		n.Narrate(ctx, line)
	}
}
