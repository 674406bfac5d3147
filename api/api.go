package api

type SelectDatasetReq struct {
	Dataset string `json:"dataset"`
}

type RebuildGraphReq struct {
	MinCorr *float64 `json:"min_corr"`
}

type HealthResp struct {
	Status        string `json:"status"`
	ActiveDataset string `json:"active_dataset"`
	BuiltAt       string `json:"built_at,omitempty"`
	Error         string `json:"error,omitempty"`
}

type ErrorResp struct {
	Error string `json:"error"`
}

type Neighbor struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
}
