package internal

import (
	"github.com/shopspring/decimal"

	"github.com/kaiwern/portfolio-graph/internal/toolkit"
)

// AggregatePositions groups positions by their exact raw counterparty name and
// computes per-client financial aggregates. The result is keyed by the
// normalized identifier; two distinct raw names normalizing to the same
// identifier fail the build with a SlugCollisionError.
func AggregatePositions(positions []*Position) (map[string]*ClientDetail, error) {
	nameToPositions := make(map[string][]*Position)
	names := make([]string, 0)
	for _, position := range positions {
		if _, seen := nameToPositions[position.Counterparty]; !seen {
			names = append(names, position.Counterparty)
		}
		nameToPositions[position.Counterparty] = append(nameToPositions[position.Counterparty], position)
	}

	clientDetails := make(map[string]*ClientDetail, len(names))
	slugToName := make(map[string]string, len(names))
	for _, name := range names {
		clientID := toolkit.Slugify(name)
		if otherName, taken := slugToName[clientID]; taken {
			return nil, &SlugCollisionError{Slug: clientID, NameA: otherName, NameB: name}
		}
		slugToName[clientID] = name

		clientDetails[clientID] = &ClientDetail{
			Name:       name,
			ID:         clientID,
			Positions:  nameToPositions[name],
			Aggregates: computeAggregates(nameToPositions[name]),
		}
	}
	return clientDetails, nil
}

func computeAggregates(positions []*Position) *Aggregates {
	gross := decimal.Zero
	net := decimal.Zero
	productGross := make(map[string]decimal.Decimal)

	for _, position := range positions {
		notional := decimal.NewFromFloat(position.NotionalUSDEst)

		gross = gross.Add(notional.Abs())
		productGross[position.ProductType] = productGross[position.ProductType].Add(notional.Abs())

		// net exposure is signed by trade direction, not by the stored notional sign
		if position.Quantity < 0 {
			net = net.Sub(notional)
		} else {
			net = net.Add(notional)
		}
	}

	productMix := make(map[string]float64, len(productGross))
	for productType, amount := range productGross {
		if gross.IsZero() {
			productMix[productType] = 0
		} else {
			productMix[productType], _ = amount.Div(gross).Float64()
		}
	}

	grossFloat, _ := gross.Float64()
	netFloat, _ := net.Float64()

	return &Aggregates{
		GrossNotional:  grossFloat,
		NetNotional:    netFloat,
		PositionsCount: len(positions),
		ProductMix:     productMix,
	}
}
