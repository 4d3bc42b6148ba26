package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the revizor home directory.
	DefaultDirName = ".revizor"

	// DataDirName is the subdirectory for review snapshots.
	DataDirName = "data"

	// LogsDirName is the subdirectory for log files.
	LogsDirName = "logs"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// CredentialsFileName is the Google service account key file.
	CredentialsFileName = "credentials.json"

	// PricingFileName is the per-model rate table.
	PricingFileName = "pricing.json"
)

// Snapshot file names for the three pipeline stages.
const (
	ReviewsSnapshotName   = "reviews.json"
	ProcessedSnapshotName = "processed.json"
	MarkedSnapshotName    = "marked.json"
)

// Dir represents the revizor home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.revizor).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// DataPath returns the path to the snapshot data directory.
func (d *Dir) DataPath() string {
	return filepath.Join(d.path, DataDirName)
}

// LogsPath returns the path to the logs directory.
func (d *Dir) LogsPath() string {
	return filepath.Join(d.path, LogsDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// CredentialsPath returns the path to the Google service account key.
func (d *Dir) CredentialsPath() string {
	return filepath.Join(d.path, CredentialsFileName)
}

// PricingPath returns the path to the pricing table.
func (d *Dir) PricingPath() string {
	return filepath.Join(d.path, PricingFileName)
}

// ReviewsSnapshotPath is where fetched reviews are stored.
func (d *Dir) ReviewsSnapshotPath() string {
	return filepath.Join(d.DataPath(), ReviewsSnapshotName)
}

// ProcessedSnapshotPath is where corrected reviews are stored.
func (d *Dir) ProcessedSnapshotPath() string {
	return filepath.Join(d.DataPath(), ProcessedSnapshotName)
}

// MarkedSnapshotPath is where spelling-annotated reviews are stored.
func (d *Dir) MarkedSnapshotPath() string {
	return filepath.Join(d.DataPath(), MarkedSnapshotName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.DataPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.MkdirAll(d.LogsPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
