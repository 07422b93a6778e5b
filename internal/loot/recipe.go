package loot

import "strings"

// RentalMarker identifies rental shard identities.
const RentalMarker = "CHAMPION_RENTAL_"

// Recipe selects the craft endpoint used to disenchant an item.
type Recipe int

const (
	// RecipeChampion disenchants permanent champion shards.
	RecipeChampion Recipe = iota
	// RecipeChampionRental disenchants rental champion shards.
	RecipeChampionRental
)

// RecipeFor derives the recipe from an item identity.
func RecipeFor(identity string) Recipe {
	if strings.Contains(identity, RentalMarker) {
		return RecipeChampionRental
	}
	return RecipeChampion
}

// Name is the recipe segment of the craft URL.
func (r Recipe) Name() string {
	switch r {
	case RecipeChampionRental:
		return "CHAMPION_RENTAL_disenchant"
	default:
		return "CHAMPION_disenchant"
	}
}

func (r Recipe) String() string {
	return r.Name()
}
