package internal

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
)

// LoadHoldings reads the holdings table and returns one Position per row.
// The header must contain every column in REQUIRED_HOLDINGS_COLUMNS; extra
// columns are ignored. Blank or unparseable numeric cells degrade to zero,
// they never fail the build.
func LoadHoldings(path string) ([]*Position, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &SourceNotFoundError{Source: "holdings", Path: path}
		}
		return nil, fmt.Errorf("unable to read holdings file %s due to: %w", path, err)
	}

	if err = validateHoldingsHeader(fileBytes); err != nil {
		return nil, err
	}

	rawPositions := make([]*RawPosition, 0)
	err = gocsv.UnmarshalBytes(fileBytes, &rawPositions)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal holdings file %s due to: %w, "+
			"make sure the CSV file has the correct format", path, err)
	}

	positions := make([]*Position, 0, len(rawPositions))
	for _, rawPosition := range rawPositions {
		positions = append(positions, cleanRawPosition(rawPosition))
	}
	return positions, nil
}

func validateHoldingsHeader(fileBytes []byte) error {
	reader := csv.NewReader(bytes.NewReader(fileBytes))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("unable to read holdings CSV header due to: %w", err)
	}

	found := make(map[string]bool, len(header))
	for _, column := range header {
		found[strings.TrimSpace(column)] = true
	}

	missing := make([]string, 0)
	for _, column := range REQUIRED_HOLDINGS_COLUMNS {
		if !found[column] {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		foundColumns := make([]string, 0, len(found))
		for column := range found {
			foundColumns = append(foundColumns, column)
		}
		sort.Strings(missing)
		sort.Strings(foundColumns)
		return &SchemaError{Missing: missing, Found: foundColumns}
	}
	return nil
}

func cleanRawPosition(rawPosition *RawPosition) *Position {
	productType := strings.TrimSpace(rawPosition.ProductType)
	if len(productType) == 0 {
		productType = UNKNOWN_PRODUCT_TYPE
	}

	return &Position{
		Counterparty:     strings.TrimSpace(rawPosition.Counterparty),
		TickerOrContract: strings.TrimSpace(rawPosition.TickerOrContract),
		ProductType:      productType,
		Quantity:         parseFloatOrZero(rawPosition.Quantity),
		PriceDemo:        parseFloatOrZero(rawPosition.PriceDemo),
		NotionalUSDEst:   parseFloatOrZero(rawPosition.NotionalUSDEst),
	}
}

func parseFloatOrZero(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}
