// Package loot classifies the player's loot inventory into champion shards
// eligible for disenchanting.
//
// Everything in this package is pure: no I/O, no package state. A Batch is
// rebuilt from scratch on every run.
package loot

const (
	// CategoryChampion is the disenchantLootName tag carried by champion shards.
	CategoryChampion = "CURRENCY_champion"

	// StatusOwned marks an entry the player actually holds.
	StatusOwned = "OWNED"
)

// Entry is one element of the player-loot response.
type Entry struct {
	LootID             string `json:"lootId"`
	LootName           string `json:"lootName"`
	Type               string `json:"type,omitempty"`
	DisenchantLootName string `json:"disenchantLootName"`
	ItemStatus         string `json:"itemStatus"`
	ItemDesc           string `json:"itemDesc"`
	Count              int    `json:"count"`
	DisenchantValue    int    `json:"disenchantValue"`
	Value              int    `json:"value"`
}

// Identity returns the item identity used in craft requests.
func (e Entry) Identity() string {
	if e.LootID != "" {
		return e.LootID
	}
	return e.LootName
}

// UnitYield is the currency granted for disenchanting a single unit.
// Older client builds only populate value.
func (e Entry) UnitYield() int {
	if e.DisenchantValue != 0 {
		return e.DisenchantValue
	}
	return e.Value
}

// StackYield is the currency granted for disenchanting the whole stack.
func (e Entry) StackYield() int {
	return e.UnitYield() * e.Count
}

// Qualifies reports whether the entry is an owned champion shard.
func (e Entry) Qualifies() bool {
	return e.DisenchantLootName == CategoryChampion && e.ItemStatus == StatusOwned
}

// Candidates returns the qualifying entries in inventory order.
func Candidates(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Qualifies() {
			out = append(out, e)
		}
	}
	return out
}
