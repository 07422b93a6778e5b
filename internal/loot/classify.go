package loot

import "sort"

// Item is one disenchant unit: a distinct identity with its whole stack.
type Item struct {
	Identity string
	Recipe   Recipe
	Count    int
	Name     string
	Yield    int
}

// Batch is the classified set of champion shards for a single run.
type Batch struct {
	// Items is keyed by identity. Every item is owned champion currency
	// that survived the exclusion set.
	Items map[string]Item

	// Qualifying counts the distinct qualifying identities before exclusion.
	Qualifying int
	// PossibleYield is the currency for every qualifying shard, ignoring exclusions.
	PossibleYield int
	// Yield is the currency for the items actually in the batch.
	Yield int
	// Excluded lists display names removed by the exclusion set.
	Excluded []string
}

// Empty reports whether there is nothing to disenchant.
func (b Batch) Empty() bool {
	return len(b.Items) == 0
}

// Sorted returns the items ordered by display name, then identity.
func (b Batch) Sorted() []Item {
	items := make([]Item, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].Identity < items[j].Identity
	})
	return items
}

// Names returns the display names slated for deletion, in Sorted order.
func (b Batch) Names() []string {
	items := b.Sorted()
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

// Counts maps identity to stack count.
func (b Batch) Counts() map[string]int {
	out := make(map[string]int, len(b.Items))
	for id, it := range b.Items {
		out[id] = it.Count
	}
	return out
}

// Classify builds the disenchant batch from the raw inventory. An entry is
// kept iff it qualifies and its display name is not excluded. Duplicate
// identities keep the last entry seen; count already covers the full stack.
func Classify(entries []Entry, exclusions ExclusionSet) Batch {
	all := make(map[string]Item)
	kept := make(map[string]Item)
	excluded := make(map[string]string)

	for _, e := range entries {
		if !e.Qualifies() {
			continue
		}
		id := e.Identity()
		it := Item{
			Identity: id,
			Recipe:   RecipeFor(id),
			Count:    e.Count,
			Name:     e.ItemDesc,
			Yield:    e.StackYield(),
		}
		all[id] = it
		if exclusions.Excludes(e.ItemDesc) {
			delete(kept, id)
			excluded[id] = e.ItemDesc
			continue
		}
		delete(excluded, id)
		kept[id] = it
	}

	b := Batch{Items: kept, Qualifying: len(all)}
	for _, it := range all {
		b.PossibleYield += it.Yield
	}
	for _, it := range kept {
		b.Yield += it.Yield
	}
	for _, name := range excluded {
		b.Excluded = append(b.Excluded, name)
	}
	sort.Strings(b.Excluded)
	return b
}
