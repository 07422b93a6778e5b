package loot

import "strings"

// ExclusionSet is the user's exclusion list checked against the inventory.
type ExclusionSet struct {
	// Resolved holds lower-cased display names that matched a candidate.
	Resolved map[string]struct{}
	// Ignored holds requested names that matched nothing, as typed.
	Ignored []string
}

// Empty reports whether no exclusion applies.
func (s ExclusionSet) Empty() bool {
	return len(s.Resolved) == 0
}

// Excludes reports whether a display name is excluded.
func (s ExclusionSet) Excludes(name string) bool {
	if len(s.Resolved) == 0 {
		return false
	}
	_, ok := s.Resolved[normalize(name)]
	return ok
}

// ParseExclusionList splits a comma-separated list of display names.
func ParseExclusionList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ResolveExclusions keeps the requested names that exactly match (ignoring
// case) the display name of a candidate. Names matching nothing land in
// Ignored so typos can be surfaced instead of silently disabling the filter.
func ResolveExclusions(raw []string, candidates []Entry) ExclusionSet {
	set := ExclusionSet{Resolved: make(map[string]struct{})}
	if len(raw) == 0 {
		return set
	}

	known := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		known[normalize(c.ItemDesc)] = struct{}{}
	}

	seenIgnored := make(map[string]struct{})
	for _, r := range raw {
		key := normalize(r)
		if key == "" {
			continue
		}
		if _, ok := known[key]; ok {
			set.Resolved[key] = struct{}{}
			continue
		}
		if _, dup := seenIgnored[key]; dup {
			continue
		}
		seenIgnored[key] = struct{}{}
		set.Ignored = append(set.Ignored, strings.TrimSpace(r))
	}
	return set
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
