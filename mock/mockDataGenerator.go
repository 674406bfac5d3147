package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/kaiwern/portfolio-graph/internal"
)

const HOLDINGS_PATH = "holdings.csv"
const CORRELATIONS_PATH = "correlations.csv"

var counterpartyNames = []string{
	"Bridgewater Associates",
	"Citadel",
	"Millennium Management",
	"Two Sigma",
	"D. E. Shaw & Co.",
	"Renaissance Technologies",
	"AQR Capital",
	"Point72",
	"Man Group",
	"Elliott Management",
	"Brevan Howard",
	"Tiger Global",
	"Baupost Group",
	"Marshall Wace",
	"Balyasny Asset Management",
	"Third Point",
	"Pershing Square",
	"Davidson Kempner",
	"Farallon Capital",
	"Viking Global",
}

var productTypes = []string{"equity", "bond", "fx_forward", "irs", "cds", "future"}

var tickerPrefixes = []string{"SPX", "NDX", "UST", "BUND", "EURUSD", "USDJPY", "CL", "GC", "CDX"}

func main() {
	totalCounterparties := flag.Int("totalCounterparties", 12, "number of counterparties to generate")
	maxPositions := flag.Int("maxPositions", 8, "maximum number of positions per counterparty")
	outDir := flag.String("outDir", "data/v1", "directory to write holdings.csv and correlations.csv into")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	if *totalCounterparties > len(counterpartyNames) {
		log.Fatalf("totalCounterparties %d exceeds the %d known names", *totalCounterparties, len(counterpartyNames))
	}
	rng := rand.New(rand.NewSource(*seed))

	parties := counterpartyNames[:*totalCounterparties]
	log.Printf("Generating data for %d counterparties\n", len(parties))

	rawPositions := make([]*internal.RawPosition, 0)
	for _, party := range parties {
		for i := 0; i < rng.Intn(*maxPositions)+1; i++ {
			quantity := float64(rng.Intn(2000) - 1000)
			price := float64(rng.Intn(500)) + rng.Float64()
			notional := quantity * price

			rawPositions = append(rawPositions, &internal.RawPosition{
				Counterparty:     party,
				TickerOrContract: fmt.Sprintf("%s-%d", tickerPrefixes[rng.Intn(len(tickerPrefixes))], i),
				ProductType:      productTypes[rng.Intn(len(productTypes))],
				Quantity:         strconv.FormatFloat(quantity, 'f', 0, 64),
				PriceDemo:        strconv.FormatFloat(price, 'f', 2, 64),
				NotionalUSDEst:   strconv.FormatFloat(notional, 'f', 2, 64),
			})
		}
	}
	log.Printf("Generated %d positions\n", len(rawPositions))

	err := os.MkdirAll(*outDir, 0755)
	if err != nil {
		log.Fatalf(err.Error())
	}

	holdingsBytes, err := gocsv.MarshalBytes(&rawPositions)
	if err != nil {
		log.Fatalf(err.Error())
	}
	holdingsPath := filepath.Join(*outDir, HOLDINGS_PATH)
	err = os.WriteFile(holdingsPath, holdingsBytes, 0644)
	if err != nil {
		log.Fatalf(err.Error())
	}
	log.Printf("Holdings written to %s", holdingsPath)

	// symmetric matrix, 1.0 on the diagonal
	weights := make([][]float64, len(parties))
	for i := range weights {
		weights[i] = make([]float64, len(parties))
		weights[i][i] = 1.0
	}
	for i := 0; i < len(parties); i++ {
		for j := i + 1; j < len(parties); j++ {
			w := float64(rng.Intn(100)) / 100.0
			weights[i][j] = w
			weights[j][i] = w
		}
	}

	correlationsPath := filepath.Join(*outDir, CORRELATIONS_PATH)
	f, err := os.Create(correlationsPath)
	if err != nil {
		log.Fatalf(err.Error())
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	header := append([]string{"counterparty"}, parties...)
	_ = writer.Write(header)
	for i, party := range parties {
		record := make([]string, 0, len(parties)+1)
		record = append(record, party)
		for j := range parties {
			record = append(record, strconv.FormatFloat(weights[i][j], 'f', 2, 64))
		}
		_ = writer.Write(record)
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		log.Fatalf(err.Error())
	}
	log.Printf("Correlations written to %s", correlationsPath)
}
