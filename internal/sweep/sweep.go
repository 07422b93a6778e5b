// Package sweep runs one fetch, filter, confirm, disenchant cycle against the
// local client. Every collaborator is injected; nothing survives the run.
package sweep

import (
	"context"
	"fmt"
	"time"

	"lootsweep/internal/confirm"
	"lootsweep/internal/disenchant"
	"lootsweep/internal/lockfile"
	"lootsweep/internal/loot"

	"go.uber.org/zap"
)

// Outcome is how a run ended. Every value maps to exit code 0.
type Outcome int

const (
	OutcomeDone Outcome = iota
	OutcomePartial
	OutcomeNothingToDo
	OutcomeDeclined
	OutcomeListed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomePartial:
		return "partial"
	case OutcomeNothingToDo:
		return "nothing to do"
	case OutcomeDeclined:
		return "declined"
	case OutcomeListed:
		return "listed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Session is the per-run connection to the local client.
type Session interface {
	PlayerLoot(ctx context.Context) ([]loot.Entry, error)
	disenchant.Crafter
	Close()
}

// CredentialResolver finds the lockfile credentials.
type CredentialResolver interface {
	Resolve(dirs []string) (lockfile.Credentials, string, error)
}

// Dialer opens a session from credentials.
type Dialer func(creds lockfile.Credentials) Session

// Confirmer decides whether the batch may be disenchanted.
type Confirmer interface {
	Confirm(ctx context.Context, s confirm.Summary) (bool, error)
}

// Reporter renders run progress to the user.
type Reporter interface {
	Ignored(names []string)
	Nothing()
	Summary(s confirm.Summary)
	Declined()
	Result(r disenchant.Result)
}

// Options are the per-run inputs.
type Options struct {
	Paths    []string
	Exclude  []string
	ListOnly bool
}

// Report is returned for every successful run.
type Report struct {
	Outcome    Outcome
	Lockfile   string
	Exclusions loot.ExclusionSet
	Batch      loot.Batch
	Result     disenchant.Result
}

// Runner wires the components of a run.
type Runner struct {
	Resolver CredentialResolver
	Dial     Dialer
	Gate     Confirmer
	Reporter Reporter
	Logger   *zap.Logger
	// CraftLogger is handed to the executor.
	CraftLogger *zap.Logger
	// Timeout bounds the fetch and the disenchant steps separately. Time
	// spent at the prompt does not count. Zero means no deadline.
	Timeout time.Duration
}

func (r *Runner) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.Timeout)
}

// Run performs one cycle. Errors are run-terminating: lockfile not found,
// network failures, malformed responses. Empty inventory, a declined
// prompt and partial deletion are reported through the Outcome instead.
func (r *Runner) Run(ctx context.Context, opts Options) (Report, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var rep Report

	creds, path, err := r.Resolver.Resolve(opts.Paths)
	if err != nil {
		return rep, err
	}
	rep.Lockfile = path
	logger.Debug("Resolved credentials",
		zap.String("lockfile", path),
		zap.String("process", creds.ProcessName),
		zap.Int("port", creds.Port))

	session := r.Dial(creds)
	defer session.Close()

	fetchCtx, cancelFetch := r.bounded(ctx)
	entries, err := session.PlayerLoot(fetchCtx)
	cancelFetch()
	if err != nil {
		return rep, fmt.Errorf("failed to fetch player loot: %w", err)
	}

	candidates := loot.Candidates(entries)
	rep.Exclusions = loot.ResolveExclusions(opts.Exclude, candidates)
	if len(rep.Exclusions.Ignored) > 0 {
		logger.Debug("Ignoring unknown exclusions", zap.Strings("names", rep.Exclusions.Ignored))
		r.Reporter.Ignored(rep.Exclusions.Ignored)
	}

	rep.Batch = loot.Classify(entries, rep.Exclusions)
	logger.Debug("Classified loot",
		zap.Int("entries", len(entries)),
		zap.Int("qualifying", rep.Batch.Qualifying),
		zap.Int("batch", len(rep.Batch.Items)),
		zap.Any("counts", rep.Batch.Counts()))

	if rep.Batch.Empty() {
		r.Reporter.Nothing()
		rep.Outcome = OutcomeNothingToDo
		return rep, nil
	}

	summary := Summarize(len(entries), rep.Batch)
	r.Reporter.Summary(summary)

	if opts.ListOnly {
		rep.Outcome = OutcomeListed
		return rep, nil
	}

	ok, err := r.Gate.Confirm(ctx, summary)
	if err != nil {
		return rep, err
	}
	if !ok {
		r.Reporter.Declined()
		rep.Outcome = OutcomeDeclined
		return rep, nil
	}

	craftCtx, cancelCraft := r.bounded(ctx)
	defer cancelCraft()
	rep.Result = disenchant.NewExecutor(session, r.CraftLogger).Execute(craftCtx, rep.Batch)
	r.Reporter.Result(rep.Result)

	rep.Outcome = OutcomeDone
	if rep.Result.Status == disenchant.StatusPartialFailure {
		rep.Outcome = OutcomePartial
	}
	return rep, nil
}

// Summarize builds the confirmation summary for a batch.
func Summarize(owned int, b loot.Batch) confirm.Summary {
	return confirm.Summary{
		Owned:         owned,
		Qualifying:    b.Qualifying,
		Count:         len(b.Items),
		Yield:         b.Yield,
		PossibleYield: b.PossibleYield,
		Names:         b.Names(),
		Excluded:      b.Excluded,
	}
}
