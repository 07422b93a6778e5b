package ui

import (
	"fmt"
	"io"
	"strings"

	"lootsweep/internal/confirm"
	"lootsweep/internal/disenchant"
)

// Report writes run progress to a terminal.
type Report struct {
	out    io.Writer
	styles Styles
}

// NewReport returns a report writing to out.
func NewReport(out io.Writer, theme Theme) *Report {
	return &Report{out: out, styles: NewStyles(out, theme)}
}

func (r *Report) line(marker string, style func(...string) string, format string, args ...any) {
	fmt.Fprintf(r.out, "%s %s\n", style(marker), fmt.Sprintf(format, args...))
}

// Ignored lists exclusions that matched no owned shard.
func (r *Report) Ignored(names []string) {
	r.line("[!]", r.styles.Warning.Render,
		"Ignoring exclusions that match no owned champion shard: %s", strings.Join(names, ", "))
}

// Nothing reports an inventory without shards to disenchant.
func (r *Report) Nothing() {
	r.line("[-]", r.styles.Muted.Render, "No champion shard to disenchant, nothing to do")
}

// Summary prints what the confirmation is about.
func (r *Report) Summary(s confirm.Summary) {
	st := r.styles
	r.line("[*]", st.Info.Render, "%d loot entries owned", s.Owned)
	r.line("[*]", st.Info.Render, "%d of them are champion shards", s.Qualifying)
	if len(s.Excluded) > 0 {
		r.line("[*]", st.Info.Render, "Keeping %d excluded: %s", len(s.Excluded), strings.Join(s.Excluded, ", "))
		r.line("[*]", st.Info.Render, "All shards would be worth %s blue essence",
			st.Muted.Render(fmt.Sprint(s.PossibleYield)))
	}
	r.line("[*]", st.Info.Render, "Disenchanting %d shards grants %s blue essence",
		s.Count, st.Value.Render(fmt.Sprint(s.Yield)))
	r.line("[*]", st.Info.Render, "Shards to disenchant:")
	fmt.Fprintln(r.out, st.List.Width(80).Render(strings.Join(s.Names, ", ")))
}

// Prompt formats the confirmation question.
func (r *Report) Prompt(question string) string {
	return fmt.Sprintf("%s %s: ", r.styles.Prompt.Render("[?]"), question)
}

// Declined reports that nothing was changed.
func (r *Report) Declined() {
	r.line("[X]", r.styles.Muted.Render, "Disenchant canceled, nothing was changed")
}

// Result prints the aggregate status and every failed item.
func (r *Report) Result(res disenchant.Result) {
	if res.Status == disenchant.StatusAllSucceeded {
		r.line("[+]", r.styles.Success.Render, "Done! %d items disenchanted", len(res.Outcomes))
		return
	}
	for _, o := range res.Failed() {
		reason := "not attempted"
		if o.Attempted {
			reason = o.Err.Error()
		}
		r.line("   ", r.styles.Muted.Render, "%s (%s): %s", o.Item.Name, o.Item.Identity, reason)
	}
	r.line("[!]", r.styles.Error.Render,
		"Some shards may not have been fully processed; run again to retry what is left")
}
