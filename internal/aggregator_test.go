package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatePositionsSignsNetByTradeDirection(t *testing.T) {
	positions := []*Position{
		{Counterparty: "Citadel", ProductType: "equity", Quantity: 5, NotionalUSDEst: 100},
		{Counterparty: "Citadel", ProductType: "equity", Quantity: -2, NotionalUSDEst: -30},
	}

	clientDetails, err := AggregatePositions(positions)
	require.NoError(t, err)
	require.Len(t, clientDetails, 1)

	agg := clientDetails["citadel"].Aggregates
	assert.Equal(t, 130.0, agg.GrossNotional)
	// the short position's negative notional flips sign, both legs add up
	assert.Equal(t, 130.0, agg.NetNotional)
	assert.Equal(t, 2, agg.PositionsCount)
}

func TestAggregatePositionsGroupsByExactRawName(t *testing.T) {
	positions := []*Position{
		{Counterparty: "Citadel", ProductType: "equity", Quantity: 1, NotionalUSDEst: 10},
		{Counterparty: "Two Sigma", ProductType: "bond", Quantity: 1, NotionalUSDEst: 20},
		{Counterparty: "Citadel", ProductType: "bond", Quantity: 1, NotionalUSDEst: 30},
	}

	clientDetails, err := AggregatePositions(positions)
	require.NoError(t, err)
	require.Len(t, clientDetails, 2)

	citadel := clientDetails["citadel"]
	assert.Equal(t, "Citadel", citadel.Name)
	assert.Equal(t, "citadel", citadel.ID)
	assert.Len(t, citadel.Positions, 2)
	assert.Equal(t, 40.0, citadel.Aggregates.GrossNotional)

	twoSigma := clientDetails["two-sigma"]
	assert.Equal(t, 1, twoSigma.Aggregates.PositionsCount)
}

func TestAggregatePositionsProductMix(t *testing.T) {
	positions := []*Position{
		{Counterparty: "Citadel", ProductType: "equity", Quantity: 1, NotionalUSDEst: 75},
		{Counterparty: "Citadel", ProductType: "bond", Quantity: 1, NotionalUSDEst: 25},
	}

	clientDetails, err := AggregatePositions(positions)
	require.NoError(t, err)

	mix := clientDetails["citadel"].Aggregates.ProductMix
	assert.InDelta(t, 0.75, mix["equity"], 1e-9)
	assert.InDelta(t, 0.25, mix["bond"], 1e-9)

	total := 0.0
	for _, share := range mix {
		total += share
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestAggregatePositionsZeroGrossNotional(t *testing.T) {
	positions := []*Position{
		{Counterparty: "Citadel", ProductType: "equity", Quantity: 1, NotionalUSDEst: 0},
		{Counterparty: "Citadel", ProductType: "bond", Quantity: -1, NotionalUSDEst: 0},
	}

	clientDetails, err := AggregatePositions(positions)
	require.NoError(t, err)

	agg := clientDetails["citadel"].Aggregates
	assert.Equal(t, 0.0, agg.GrossNotional)
	assert.Equal(t, 0.0, agg.ProductMix["equity"])
	assert.Equal(t, 0.0, agg.ProductMix["bond"])
}

func TestAggregatePositionsSlugCollision(t *testing.T) {
	positions := []*Position{
		{Counterparty: "Two Sigma", Quantity: 1, NotionalUSDEst: 10},
		{Counterparty: "Two-Sigma", Quantity: 1, NotionalUSDEst: 20},
	}

	clientDetails, err := AggregatePositions(positions)
	assert.Nil(t, clientDetails)

	var collisionErr *SlugCollisionError
	require.ErrorAs(t, err, &collisionErr)
	assert.Equal(t, "two-sigma", collisionErr.Slug)
	assert.Contains(t, err.Error(), "Two Sigma")
	assert.Contains(t, err.Error(), "Two-Sigma")
}
