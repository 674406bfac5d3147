package internal

import (
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kaiwern/portfolio-graph/internal/toolkit"
)

const asymmetryTolerance = 1e-9

// BuildEdges scans the upper triangle of the correlation matrix and emits one
// edge per unordered counterparty pair whose normalized weight meets minCorr.
// Both endpoints must be present in knownCounterparties (raw names from
// holdings); correlation-only counterparties never contribute edges. Cell
// values with magnitude above 1 are treated as percentages.
//
// The matrix is assumed symmetric; only the upper triangle is read. Cells
// whose mirror value disagrees are counted in meta.AsymmetricCells so callers
// can surface the input-quality issue.
func BuildEdges(matrix *CorrMatrix, knownCounterparties map[string]bool, minCorr float64) ([]*Edge, *Meta) {
	corrCounterparties := make(map[string]bool, len(matrix.Index))
	for _, name := range matrix.Index {
		corrCounterparties[name] = true
	}
	for _, name := range matrix.Columns {
		corrCounterparties[name] = true
	}

	droppedFromCorr := make([]string, 0)
	for name := range corrCounterparties {
		if !knownCounterparties[name] {
			droppedFromCorr = append(droppedFromCorr, name)
		}
	}
	missingCorrForHoldings := make([]string, 0)
	for name := range knownCounterparties {
		if !corrCounterparties[name] {
			missingCorrForHoldings = append(missingCorrForHoldings, name)
		}
	}
	sort.Strings(droppedFromCorr)
	sort.Strings(missingCorrForHoldings)

	rowPos := make(map[string]int, len(matrix.Index))
	for i, name := range matrix.Index {
		rowPos[name] = i
	}
	colPos := make(map[string]int, len(matrix.Columns))
	for j, name := range matrix.Columns {
		colPos[name] = j
	}

	edges := make([]*Edge, 0)
	var corrMinKept, corrMaxKept *float64
	asymmetricCells := 0

	for i, u := range matrix.Index {
		for j, v := range matrix.Columns {
			if i >= j {
				continue
			}
			if !knownCounterparties[u] || !knownCounterparties[v] {
				continue
			}

			rawValue, err := strconv.ParseFloat(strings.TrimSpace(matrix.Cell(i, j)), 64)
			if err != nil {
				continue
			}

			if mirrorRow, ok := rowPos[v]; ok {
				if mirrorCol, ok := colPos[u]; ok {
					mirrorValue, mirrorErr := strconv.ParseFloat(strings.TrimSpace(matrix.Cell(mirrorRow, mirrorCol)), 64)
					if mirrorErr == nil && math.Abs(mirrorValue-rawValue) > asymmetryTolerance {
						asymmetricCells++
					}
				}
			}

			weight := rawValue
			if math.Abs(weight) > 1 {
				weight = weight / 100.0
			}
			// still out of range after percentage normalization, unusable cell
			if weight > 1 {
				continue
			}

			if weight < minCorr {
				continue
			}

			edges = append(edges, &Edge{
				Source:  toolkit.Slugify(u),
				Target:  toolkit.Slugify(v),
				Weight:  weight,
				CorrPct: rawValue,
			})
			if corrMinKept == nil || weight < *corrMinKept {
				w := weight
				corrMinKept = &w
			}
			if corrMaxKept == nil || weight > *corrMaxKept {
				w := weight
				corrMaxKept = &w
			}
		}
	}

	meta := &Meta{
		NumEdges:               len(edges),
		CorrMinKept:            corrMinKept,
		CorrMaxKept:            corrMaxKept,
		MinCorrUsed:            minCorr,
		DroppedFromCorr:        droppedFromCorr,
		MissingCorrForHoldings: missingCorrForHoldings,
		AsymmetricCells:        asymmetricCells,
	}
	return edges, meta
}

// BuildGraph derives the full relationship graph from the two source tables.
// Holdings are authoritative for graph membership; the correlation matrix
// only weights and filters edges. Pure per invocation, no shared state.
func BuildGraph(holdingsPath string, corrPath string, minCorr float64) (*BuildResult, error) {
	if _, err := os.Stat(holdingsPath); os.IsNotExist(err) {
		return nil, &SourceNotFoundError{Source: "holdings", Path: holdingsPath}
	}
	if _, err := os.Stat(corrPath); os.IsNotExist(err) {
		return nil, &SourceNotFoundError{Source: "correlations", Path: corrPath}
	}

	positions, err := LoadHoldings(holdingsPath)
	if err != nil {
		return nil, err
	}

	clientDetails, err := AggregatePositions(positions)
	if err != nil {
		return nil, err
	}

	knownCounterparties := make(map[string]bool, len(clientDetails))
	nodes := make([]*Node, 0, len(clientDetails))
	for _, details := range clientDetails {
		knownCounterparties[details.Name] = true
		nodes = append(nodes, &Node{
			ID:             details.ID,
			Label:          details.Name,
			GrossNotional:  details.Aggregates.GrossNotional,
			NetNotional:    details.Aggregates.NetNotional,
			PositionsCount: details.Aggregates.PositionsCount,
			ProductMix:     details.Aggregates.ProductMix,
		})
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID < nodes[j].ID
	})

	matrix, err := LoadCorrMatrix(corrPath)
	if err != nil {
		return nil, err
	}

	edges, meta := BuildEdges(matrix, knownCounterparties, minCorr)
	meta.NumClients = len(clientDetails)

	return &BuildResult{
		Nodes:         nodes,
		Edges:         edges,
		ClientDetails: clientDetails,
		Meta:          meta,
	}, nil
}
