package disenchant

import (
	"context"
	"errors"
	"testing"

	"lootsweep/internal/loot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type call struct {
	recipe   loot.Recipe
	identity string
	repeat   int
}

type fakeCrafter struct {
	calls []call
	fail  map[string]error
	after func()
}

func (f *fakeCrafter) Craft(_ context.Context, recipe loot.Recipe, identity string, repeat int) error {
	f.calls = append(f.calls, call{recipe, identity, repeat})
	if f.after != nil {
		f.after()
	}
	return f.fail[identity]
}

func batchOf(entries ...loot.Entry) loot.Batch {
	return loot.Classify(entries, loot.ExclusionSet{})
}

func shard(id, name string, count int) loot.Entry {
	return loot.Entry{
		LootID:             id,
		DisenchantLootName: loot.CategoryChampion,
		ItemStatus:         loot.StatusOwned,
		ItemDesc:           name,
		Count:              count,
		DisenchantValue:    100,
	}
}

var errServer = errors.New("POST craft failed with status 500")

func TestExecute_OneRequestPerIdentity(t *testing.T) {
	f := &fakeCrafter{}
	batch := batchOf(shard("A", "Alpha", 3), shard("CHAMPION_RENTAL_B", "Beta", 1))

	res := NewExecutor(f, nil).Execute(context.Background(), batch)

	assert.Equal(t, []call{
		{loot.RecipeChampion, "A", 3},
		{loot.RecipeChampionRental, "CHAMPION_RENTAL_B", 1},
	}, f.calls)
	assert.Equal(t, StatusAllSucceeded, res.Status)
	assert.Empty(t, res.Failed())
	require.Len(t, res.Outcomes, 2)
	for _, o := range res.Outcomes {
		assert.True(t, o.Attempted)
	}
}

func TestExecute_ContinuesAfterFailure(t *testing.T) {
	f := &fakeCrafter{fail: map[string]error{"A": errServer}}
	batch := batchOf(shard("A", "Alpha", 3), shard("CHAMPION_RENTAL_B", "Beta", 1))

	res := NewExecutor(f, nil).Execute(context.Background(), batch)

	assert.Len(t, f.calls, 2, "every item must be attempted")
	assert.Equal(t, StatusPartialFailure, res.Status)
	failed := res.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "A", failed[0].Item.Identity)
	assert.ErrorIs(t, failed[0].Err, errServer)
}

func TestExecute_EmptyBatch(t *testing.T) {
	f := &fakeCrafter{}
	res := NewExecutor(f, nil).Execute(context.Background(), loot.Batch{})

	assert.Empty(t, f.calls)
	assert.Empty(t, res.Outcomes)
	assert.Equal(t, StatusAllSucceeded, res.Status)
}

func TestExecute_CancelStopsRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &fakeCrafter{after: cancel}
	batch := batchOf(shard("A", "Alpha", 1), shard("B", "Beta", 1), shard("C", "Gamma", 1))

	res := NewExecutor(f, nil).Execute(ctx, batch)

	assert.Len(t, f.calls, 1)
	assert.Equal(t, StatusPartialFailure, res.Status)
	require.Len(t, res.Outcomes, 3)
	assert.True(t, res.Outcomes[0].Attempted)
	assert.NoError(t, res.Outcomes[0].Err)
	for _, o := range res.Outcomes[1:] {
		assert.False(t, o.Attempted)
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "all succeeded", StatusAllSucceeded.String())
	assert.Equal(t, "one or more items may not have been fully processed", StatusPartialFailure.String())
}
