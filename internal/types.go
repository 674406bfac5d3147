package internal

const DEFAULT_MIN_CORR = 0.25
const HOLDINGS_FILE = "holdings.csv"
const CORRELATIONS_FILE = "correlations.csv"
const UNKNOWN_PRODUCT_TYPE = "unknown"

// REQUIRED_HOLDINGS_COLUMNS is the exact header contract for holdings.csv.
var REQUIRED_HOLDINGS_COLUMNS = []string{
	"counterparty",
	"ticker_or_contract",
	"product_type",
	"quantity",
	"price_demo",
	"notional_usd_est",
}

type RawPosition struct {
	Counterparty     string `csv:"counterparty"`
	TickerOrContract string `csv:"ticker_or_contract"`
	ProductType      string `csv:"product_type"`
	Quantity         string `csv:"quantity"`
	PriceDemo        string `csv:"price_demo"`
	NotionalUSDEst   string `csv:"notional_usd_est"`
}

type Position struct {
	Counterparty     string  `json:"counterparty"`
	TickerOrContract string  `json:"ticker_or_contract"`
	ProductType      string  `json:"product_type"`
	Quantity         float64 `json:"quantity"`
	PriceDemo        float64 `json:"price_demo"`
	NotionalUSDEst   float64 `json:"notional_usd_est"`
}

type Aggregates struct {
	GrossNotional  float64            `json:"gross_notional"`
	NetNotional    float64            `json:"net_notional"`
	PositionsCount int                `json:"positions_count"`
	ProductMix     map[string]float64 `json:"product_mix"`
}

type ClientDetail struct {
	Name       string      `json:"name"`
	ID         string      `json:"id"`
	Positions  []*Position `json:"positions"`
	Aggregates *Aggregates `json:"aggregates"`
}

type Node struct {
	ID             string             `json:"id"`
	Label          string             `json:"label"`
	GrossNotional  float64            `json:"gross_notional"`
	NetNotional    float64            `json:"net_notional"`
	PositionsCount int                `json:"positions_count"`
	ProductMix     map[string]float64 `json:"product_mix"`
}

type Edge struct {
	Source  string  `json:"source"`
	Target  string  `json:"target"`
	Weight  float64 `json:"weight"`
	CorrPct float64 `json:"corr_pct"`
}

// CorrMinKept and CorrMaxKept are nil when no edge survived the threshold,
// marshalling to JSON null rather than a fabricated zero.
type Meta struct {
	NumClients             int      `json:"num_clients"`
	NumEdges               int      `json:"num_edges"`
	CorrMinKept            *float64 `json:"corr_min_kept"`
	CorrMaxKept            *float64 `json:"corr_max_kept"`
	MinCorrUsed            float64  `json:"min_corr_used"`
	DroppedFromCorr        []string `json:"dropped_from_corr"`
	MissingCorrForHoldings []string `json:"missing_corr_for_holdings"`
	AsymmetricCells        int      `json:"asymmetric_cells"`
}

type BuildResult struct {
	Nodes         []*Node                  `json:"nodes"`
	Edges         []*Edge                  `json:"edges"`
	ClientDetails map[string]*ClientDetail `json:"client_details"`
	Meta          *Meta                    `json:"meta"`
}
