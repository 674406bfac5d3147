package main

import (
	"os"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/kaiwern/portfolio-graph/internal"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using environment as-is")
	}

	dataDir := envOr("DATA_DIR", "data")
	datasetsFile := envOr("DATASETS_FILE", "datasets.json")

	minCorr := internal.DEFAULT_MIN_CORR
	if raw := os.Getenv("MIN_CORR"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			logrus.Fatalf("MIN_CORR %q is not a valid number", raw)
		}
		minCorr = value
	}

	registry, err := internal.LoadDatasetRegistry(datasetsFile, dataDir)
	if err != nil {
		logrus.Fatalf("Unable to load dataset registry due to: %s", err.Error())
	}

	mainHandler := internal.NewMainHandler(registry, internal.NewGraphCache())
	mainHandler.BuildAtStartup(minCorr)

	router := gin.Default()
	router.Use(cors.Default())
	router.GET("/health", mainHandler.Health)
	router.GET("/datasets", mainHandler.ListDatasets)
	router.POST("/dataset/select", mainHandler.SelectDataset)
	router.POST("/graph/rebuild", mainHandler.RebuildGraph)
	router.GET("/graph", mainHandler.GetGraph)
	router.GET("/client/:client_id", mainHandler.GetClient)
	router.Run()
}

func envOr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
