package orderbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ascending(a, b decimal.Decimal) int  { return a.Cmp(b) }
func descending(a, b decimal.Decimal) int { return b.Cmp(a) }

func TestLevelTreeUpsertFindDelete(t *testing.T) {
	tree := newLevelTree(ascending)

	pl1 := tree.upsert(dec("100"))
	require.NotNil(t, pl1)
	assert.Same(t, pl1, tree.upsert(dec("100")), "upsert must return the existing level")

	tree.upsert(dec("200"))
	assert.Equal(t, 2, tree.len())
	assert.Equal(t, "100", tree.first().price.String())

	assert.True(t, tree.delete(dec("100")))
	assert.False(t, tree.delete(dec("100")))
	assert.Equal(t, "200", tree.first().price.String())
}

func TestLevelTreeEmpty(t *testing.T) {
	tree := newLevelTree(ascending)
	assert.Nil(t, tree.first())
	assert.False(t, tree.delete(dec("1")))
	assert.Equal(t, 0, tree.len())
}

func TestLevelTreeIterationOrder(t *testing.T) {
	prices := []string{"103", "99", "101", "100", "102", "98"}

	collect := func(tree *levelTree) []string {
		var out []string
		tree.forEach(func(l *priceLevel) bool {
			out = append(out, l.price.String())
			return true
		})
		return out
	}

	asc := newLevelTree(ascending)
	desc := newLevelTree(descending)
	for _, p := range prices {
		asc.upsert(dec(p))
		desc.upsert(dec(p))
	}

	assert.Equal(t, []string{"98", "99", "100", "101", "102", "103"}, collect(asc))
	assert.Equal(t, []string{"103", "102", "101", "100", "99", "98"}, collect(desc))
}

func TestLevelTreeDeleteRebalances(t *testing.T) {
	tree := newLevelTree(ascending)
	prices := []string{"5", "3", "8", "1", "4", "7", "9", "2", "6"}
	for _, p := range prices {
		tree.upsert(dec(p))
	}

	for _, p := range []string{"5", "1", "9", "3"} {
		require.True(t, tree.delete(dec(p)))
	}

	var out []string
	tree.forEach(func(l *priceLevel) bool {
		out = append(out, l.price.String())
		return true
	})
	assert.Equal(t, []string{"2", "4", "6", "7", "8"}, out)
	assert.Equal(t, 5, tree.len())
}

func TestLevelTreeForEachEarlyStop(t *testing.T) {
	tree := newLevelTree(ascending)
	for _, p := range []string{"1", "2", "3"} {
		tree.upsert(dec(p))
	}

	var visited int
	tree.forEach(func(l *priceLevel) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}
