package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/araddon/dateparse"
)

type DatasetInfo struct {
	Label     string `json:"label,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type RegistryFile struct {
	Datasets      map[string]*DatasetInfo `json:"datasets"`
	ActiveVersion string                  `json:"active_version"`
}

// DatasetRegistry owns datasets.json: which dataset versions exist, which one
// is active, and where their CSV files live under the data directory.
type DatasetRegistry struct {
	FilePath string
	DataDir  string

	mu       sync.Mutex
	registry *RegistryFile
}

func LoadDatasetRegistry(filePath string, dataDir string) (*DatasetRegistry, error) {
	fileBytes, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("registry file not found: %s, expected structure: "+
				`{"datasets": {"v1": {...}}, "active_version": "v1"}`, filePath)
		}
		return nil, fmt.Errorf("unable to read registry file %s due to: %w", filePath, err)
	}

	registry := &RegistryFile{}
	err = json.Unmarshal(fileBytes, registry)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON in registry file %s due to: %w", filePath, err)
	}
	if registry.Datasets == nil {
		registry.Datasets = make(map[string]*DatasetInfo)
	}
	if registry.ActiveVersion == "" {
		registry.ActiveVersion = pickDefaultVersion(registry.Datasets)
	}

	return &DatasetRegistry{
		FilePath: filePath,
		DataDir:  dataDir,
		registry: registry,
	}, nil
}

// pickDefaultVersion prefers the dataset with the newest created_at timestamp,
// falling back to the lexicographically first version when no entry parses.
// created_at is free-form text written by upstream tooling, hence dateparse.
func pickDefaultVersion(datasets map[string]*DatasetInfo) string {
	versions := make([]string, 0, len(datasets))
	for version := range datasets {
		versions = append(versions, version)
	}
	if len(versions) == 0 {
		return ""
	}
	sort.Strings(versions)

	best := ""
	var bestTime time.Time
	for _, version := range versions {
		info := datasets[version]
		if info == nil || info.CreatedAt == "" {
			continue
		}
		createdAt, err := dateparse.ParseAny(info.CreatedAt)
		if err != nil {
			continue
		}
		if best == "" || createdAt.After(bestTime) {
			best = version
			bestTime = createdAt
		}
	}
	if best == "" {
		best = versions[0]
	}
	return best
}

func (r *DatasetRegistry) Snapshot() RegistryFile {
	r.mu.Lock()
	defer r.mu.Unlock()

	datasets := make(map[string]*DatasetInfo, len(r.registry.Datasets))
	for version, info := range r.registry.Datasets {
		copied := *info
		datasets[version] = &copied
	}
	return RegistryFile{
		Datasets:      datasets,
		ActiveVersion: r.registry.ActiveVersion,
	}
}

func (r *DatasetRegistry) ActiveVersion() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registry.ActiveVersion
}

// Switch activates a version and persists the registry.
func (r *DatasetRegistry) Switch(version string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.registry.Datasets[version]; !ok {
		return fmt.Errorf("version %s not found in registry", version)
	}
	r.registry.ActiveVersion = version
	return r.save()
}

func (r *DatasetRegistry) save() error {
	fileBytes, err := json.MarshalIndent(r.registry, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal registry due to: %w", err)
	}
	err = os.WriteFile(r.FilePath, fileBytes, 0644)
	if err != nil {
		return fmt.Errorf("unable to write registry file %s due to: %w", r.FilePath, err)
	}
	return nil
}

// PathsFor resolves the holdings and correlations CSV paths for a version.
// File existence is checked by BuildGraph, not here.
func (r *DatasetRegistry) PathsFor(version string) (string, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if version == "" {
		version = r.registry.ActiveVersion
	}
	if version == "" {
		versions := make([]string, 0, len(r.registry.Datasets))
		for v := range r.registry.Datasets {
			versions = append(versions, v)
		}
		sort.Strings(versions)
		return "", "", fmt.Errorf("no active version set in registry, available versions: %v", versions)
	}
	if _, ok := r.registry.Datasets[version]; !ok {
		return "", "", fmt.Errorf("version %s not found in registry", version)
	}

	base := filepath.Join(r.DataDir, version)
	return filepath.Join(base, HOLDINGS_FILE), filepath.Join(base, CORRELATIONS_FILE), nil
}
