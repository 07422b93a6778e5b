// Package confirm gates the irreversible disenchant step behind an explicit
// yes from the user.
package confirm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Question builds the prompt shown for a summary.
func Question(s Summary) string {
	return fmt.Sprintf("Do you confirm the disenchantment of %d champion shards for %d blue essence? (yes/no)", s.Count, s.Yield)
}

// Summary is what the user sees before deciding.
type Summary struct {
	// Owned is the number of loot entries in the inventory.
	Owned int
	// Qualifying is the number of owned champion shards before exclusion.
	Qualifying int
	// Count is the number of shards slated for deletion.
	Count int
	// Yield is the currency granted by the shards slated for deletion.
	Yield int
	// PossibleYield is the currency all qualifying shards would grant.
	PossibleYield int
	Names         []string
	Excluded      []string
}

// Prompter asks the user a question and returns the raw answer. Ask must
// return ctx.Err() once ctx is done, even while waiting for input.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Decide maps a raw answer to a decision. Empty answers take the default;
// anything unrecognized is a no.
func Decide(answer string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def
	case "yes", "y":
		return true
	default:
		return false
	}
}

// Gate asks the prompter once. The zero Default is no.
type Gate struct {
	Prompter  Prompter
	Default   bool
	AssumeYes bool
}

// Confirm returns whether the user accepted. A closed input resolves to the
// default instead of an error. An interrupted prompt is a no.
func (g Gate) Confirm(ctx context.Context, s Summary) (bool, error) {
	if g.AssumeYes {
		return true, nil
	}
	if g.Prompter == nil {
		return g.Default, nil
	}
	answer, err := g.Prompter.Ask(ctx, Question(s))
	if err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return Decide(answer, g.Default), nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return false, nil
		}
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return Decide(answer, g.Default), nil
}

type line struct {
	text string
	err  error
}

// LinePrompter reads one line from In after writing the question to Out.
// Format decorates the question; nil prints "[?] question: ".
type LinePrompter struct {
	In     io.Reader
	Out    io.Writer
	Format func(question string) string

	reader  *bufio.Reader
	pending chan line
}

// NewLinePrompter wraps a terminal.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{In: in, Out: out, reader: bufio.NewReader(in)}
}

// Ask implements Prompter. A read abandoned by a done context stays pending
// and feeds the next Ask.
func (p *LinePrompter) Ask(ctx context.Context, question string) (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	if p.Out != nil {
		if p.Format != nil {
			fmt.Fprint(p.Out, p.Format(question))
		} else {
			fmt.Fprintf(p.Out, "[?] %s: ", question)
		}
	}

	if p.pending == nil {
		ch := make(chan line, 1)
		go func() {
			text, err := p.reader.ReadString('\n')
			ch <- line{strings.TrimRight(text, "\r\n"), err}
		}()
		p.pending = ch
	}

	select {
	case l := <-p.pending:
		p.pending = nil
		return l.text, l.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
