package internal

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kaiwern/portfolio-graph/api"
	"github.com/kaiwern/portfolio-graph/internal/toolkit"
)

type MainHandler struct {
	Registry *DatasetRegistry
	Cache    *GraphCache
}

func NewMainHandler(registry *DatasetRegistry, cache *GraphCache) *MainHandler {
	return &MainHandler{
		Registry: registry,
		Cache:    cache,
	}
}

func requestLogger() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"request_id": toolkit.UniqueID(),
	})
}

func statusForBuildError(err error) int {
	var notFound *SourceNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	var schemaErr *SchemaError
	var collisionErr *SlugCollisionError
	if errors.As(err, &schemaErr) || errors.As(err, &collisionErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// rebuild runs a full graph build for a dataset version and caches the result.
// On failure the previous cached build stays available and the error is
// remembered for /health.
func (handler *MainHandler) rebuild(version string, minCorr float64, logger *logrus.Entry) (*CachedBuild, error) {
	if version == "" {
		version = handler.Registry.ActiveVersion()
	}

	holdingsPath, corrPath, err := handler.Registry.PathsFor(version)
	if err != nil {
		handler.Cache.SetError(err)
		return nil, err
	}

	buildStart := time.Now()
	result, err := BuildGraph(holdingsPath, corrPath, minCorr)
	if err != nil {
		handler.Cache.SetError(err)
		logger.Infof("Error building graph for version %s due to: %s", version, err.Error())
		return nil, err
	}
	logger.Infof("Done building graph for version %s, %d clients, %d edges, took %s",
		version, result.Meta.NumClients, result.Meta.NumEdges, time.Since(buildStart))

	if result.Meta.AsymmetricCells > 0 {
		logger.Warnf("correlation matrix for version %s has %d asymmetric cells, upper triangle was used",
			version, result.Meta.AsymmetricCells)
	}

	build := &CachedBuild{
		Version: version,
		MinCorr: minCorr,
		BuiltAt: time.Now().UTC(),
		Result:  result,
	}
	handler.Cache.Put(build)
	return build, nil
}

// BuildAtStartup builds the active dataset once at boot. A failure is logged
// and remembered for /health but does not abort the server.
func (handler *MainHandler) BuildAtStartup(minCorr float64) {
	logger := logrus.WithFields(logrus.Fields{
		"request_id": "startup",
	})

	build, err := handler.rebuild("", minCorr, logger)
	if err != nil {
		logger.Warnf("Initial graph build failed due to: %s", err.Error())
		return
	}
	logger.Infof("Graph initialized for version %s: %d clients, %d edges",
		build.Version, build.Result.Meta.NumClients, build.Result.Meta.NumEdges)
}

func (handler *MainHandler) Health(c *gin.Context) {
	resp := api.HealthResp{
		Status:        "ok",
		ActiveDataset: handler.Registry.ActiveVersion(),
	}
	if current := handler.Cache.Current(); current != nil {
		resp.BuiltAt = current.BuiltAt.Format(time.RFC3339)
	}
	if err := handler.Cache.LastError(); err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (handler *MainHandler) ListDatasets(c *gin.Context) {
	snapshot := handler.Registry.Snapshot()

	versions := make([]string, 0, len(snapshot.Datasets))
	for version := range snapshot.Datasets {
		versions = append(versions, version)
	}
	sort.Strings(versions)

	c.JSON(http.StatusOK, gin.H{
		"active_dataset":     snapshot.ActiveVersion,
		"available_datasets": versions,
		"datasets":           snapshot.Datasets,
	})
}

func (handler *MainHandler) SelectDataset(c *gin.Context) {
	logger := requestLogger()

	var req api.SelectDatasetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResp{Error: err.Error()})
		return
	}
	if req.Dataset == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResp{Error: "missing 'dataset' key in body"})
		return
	}

	// keep the threshold of the currently cached build across the switch
	minCorr := DEFAULT_MIN_CORR
	if current := handler.Cache.Current(); current != nil {
		minCorr = current.MinCorr
	}

	if err := handler.Registry.Switch(req.Dataset); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResp{Error: err.Error()})
		return
	}
	handler.Cache.Clear()
	logger.Infof("Switched active dataset to %s", req.Dataset)

	build, err := handler.rebuild(req.Dataset, minCorr, logger)
	if err != nil {
		c.JSON(statusForBuildError(err), api.ErrorResp{Error: fmt.Sprintf("failed to rebuild graph due to: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        fmt.Sprintf("switched to dataset %s", req.Dataset),
		"active_dataset": build.Version,
		"meta":           build.Result.Meta,
	})
}

func (handler *MainHandler) RebuildGraph(c *gin.Context) {
	logger := requestLogger()

	// body is optional, an empty body means "rebuild with the current threshold"
	var req api.RebuildGraphReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, api.ErrorResp{Error: err.Error()})
		return
	}

	minCorr := DEFAULT_MIN_CORR
	if current := handler.Cache.Current(); current != nil {
		minCorr = current.MinCorr
	}
	if req.MinCorr != nil {
		minCorr = *req.MinCorr
	}

	build, err := handler.rebuild("", minCorr, logger)
	if err != nil {
		c.JSON(statusForBuildError(err), api.ErrorResp{Error: fmt.Sprintf("failed to rebuild graph due to: %s", err.Error())})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "graph rebuilt successfully",
		"active_dataset": build.Version,
		"min_corr":       build.MinCorr,
		"built_at":       build.BuiltAt.Format(time.RFC3339),
		"meta":           build.Result.Meta,
	})
}

func (handler *MainHandler) GetGraph(c *gin.Context) {
	logger := requestLogger()

	var requestedMinCorr *float64
	if raw := c.Query("min_corr"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResp{Error: fmt.Sprintf("min_corr %q is not a valid number", raw)})
			return
		}
		requestedMinCorr = &value
	}

	current := handler.Cache.Current()
	if current == nil || (requestedMinCorr != nil && *requestedMinCorr != current.MinCorr) {
		minCorr := DEFAULT_MIN_CORR
		if requestedMinCorr != nil {
			minCorr = *requestedMinCorr
		} else if current != nil {
			minCorr = current.MinCorr
		}

		build, err := handler.rebuild("", minCorr, logger)
		if err != nil {
			c.JSON(statusForBuildError(err), api.ErrorResp{Error: fmt.Sprintf("failed to build graph due to: %s", err.Error())})
			return
		}
		current = build
	}

	c.JSON(http.StatusOK, gin.H{
		"nodes": current.Result.Nodes,
		"edges": current.Result.Edges,
		"meta":  current.Result.Meta,
	})
}

func (handler *MainHandler) GetClient(c *gin.Context) {
	logger := requestLogger()
	clientID := c.Param("client_id")

	current := handler.Cache.Current()
	if current == nil {
		build, err := handler.rebuild("", DEFAULT_MIN_CORR, logger)
		if err != nil {
			c.JSON(statusForBuildError(err), api.ErrorResp{Error: fmt.Sprintf("graph not available due to: %s", err.Error())})
			return
		}
		current = build
	}

	details, ok := current.Result.ClientDetails[clientID]
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResp{Error: clientNotFoundMessage(clientID, current.Result.ClientDetails)})
		return
	}

	neighbors := make([]api.Neighbor, 0)
	for _, edge := range current.Result.Edges {
		if edge.Source == clientID {
			neighbors = append(neighbors, api.Neighbor{ID: edge.Target, Weight: edge.Weight})
		} else if edge.Target == clientID {
			neighbors = append(neighbors, api.Neighbor{ID: edge.Source, Weight: edge.Weight})
		}
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Weight != neighbors[j].Weight {
			return neighbors[i].Weight > neighbors[j].Weight
		}
		return neighbors[i].ID < neighbors[j].ID
	})

	c.JSON(http.StatusOK, gin.H{
		"name":           details.Name,
		"id":             details.ID,
		"positions":      details.Positions,
		"aggregates":     details.Aggregates,
		"neighbor_count": len(neighbors),
		"neighbors":      neighbors,
	})
}

func clientNotFoundMessage(clientID string, clientDetails map[string]*ClientDetail) string {
	available := make([]string, 0, len(clientDetails))
	for id := range clientDetails {
		available = append(available, id)
	}
	sort.Strings(available)

	suffix := ""
	if len(available) > 5 {
		available = available[:5]
		suffix = ", ..."
	}
	return fmt.Sprintf("client %s not found, available clients: %s%s",
		clientID, strings.Join(available, ", "), suffix)
}
