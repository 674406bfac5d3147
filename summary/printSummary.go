package main

import (
	"flag"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kaiwern/portfolio-graph/internal"
)

// Debug helper: builds the active dataset and prints a graph summary.
func main() {
	datasetsFile := flag.String("datasetsFile", "datasets.json", "path to the dataset registry")
	dataDir := flag.String("dataDir", "data", "base directory holding per-version CSVs")
	minCorr := flag.Float64("minCorr", internal.DEFAULT_MIN_CORR, "minimum correlation threshold")
	topN := flag.Int("topN", 3, "number of top clients by gross notional to print")
	flag.Parse()

	registry, err := internal.LoadDatasetRegistry(*datasetsFile, *dataDir)
	if err != nil {
		logrus.Fatalf("Unable to load dataset registry due to: %s", err.Error())
	}

	holdingsPath, corrPath, err := registry.PathsFor("")
	if err != nil {
		logrus.Fatalf("Unable to resolve dataset paths due to: %s", err.Error())
	}

	result, err := internal.BuildGraph(holdingsPath, corrPath, *minCorr)
	if err != nil {
		logrus.Fatalf("Error building graph due to: %s", err.Error())
	}

	p := message.NewPrinter(language.English)

	fmt.Println("Portfolio Graph Summary")
	fmt.Println("=======================")
	p.Printf("Active dataset: %s\n", registry.ActiveVersion())
	p.Printf("Min correlation threshold: %g\n", result.Meta.MinCorrUsed)
	p.Printf("Clients: %d\n", result.Meta.NumClients)
	p.Printf("Edges: %d\n", result.Meta.NumEdges)
	if result.Meta.CorrMinKept != nil && result.Meta.CorrMaxKept != nil {
		p.Printf("Kept edge weights: %.2f .. %.2f\n", *result.Meta.CorrMinKept, *result.Meta.CorrMaxKept)
	} else {
		fmt.Println("Kept edge weights: none")
	}
	if len(result.Meta.DroppedFromCorr) > 0 {
		p.Printf("Dropped from correlations (not in holdings): %v\n", result.Meta.DroppedFromCorr)
	}
	if len(result.Meta.MissingCorrForHoldings) > 0 {
		p.Printf("Holdings without correlations: %v\n", result.Meta.MissingCorrForHoldings)
	}
	if result.Meta.AsymmetricCells > 0 {
		p.Printf("Asymmetric matrix cells: %d\n", result.Meta.AsymmetricCells)
	}

	details := make([]*internal.ClientDetail, 0, len(result.ClientDetails))
	for _, detail := range result.ClientDetails {
		details = append(details, detail)
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].Aggregates.GrossNotional > details[j].Aggregates.GrossNotional
	})
	if len(details) > *topN {
		details = details[:*topN]
	}

	p.Printf("\nTop %d clients by gross notional\n", len(details))
	fmt.Println("--------------------------------")
	for rank, detail := range details {
		p.Printf("%d. %s (%s): gross $%.0f, net $%.0f, %d positions\n",
			rank+1,
			detail.Name,
			detail.ID,
			detail.Aggregates.GrossNotional,
			detail.Aggregates.NetNotional,
			detail.Aggregates.PositionsCount)
	}
}
