package cli

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/konverty/backend/internal/models"
)

var errAPIURLMissing = errors.New("environment variable API_URL must be set")

const (
	defaultPort    = "8080"
	defaultDataDir = "data"
	databaseFile   = "konverty.db"
)

// config is the configuration of the server.
type config struct {
	APIURL  *url.URL
	Port    string
	DataDir string
}

// loadConfig reads the configuration from the environment.
func loadConfig() (config, error) {
	c := config{
		Port:    defaultPort,
		DataDir: defaultDataDir,
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok || apiURL == "" {
		return config{}, errAPIURLMissing
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return config{}, fmt.Errorf("environment variable API_URL is not a valid URL: %w", err)
	}
	c.APIURL = u

	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		c.Port = port
	}

	if dataDir, ok := os.LookupEnv("DATA_DIR"); ok && dataDir != "" {
		c.DataDir = dataDir
	}

	return c, nil
}

// connect creates the data directory and connects to the database in it.
func connect(dataDir string) error {
	err := os.MkdirAll(dataDir, 0o750)
	if err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	return models.Connect(filepath.Join(dataDir, databaseFile))
}

// disconnect closes the database connection.
func disconnect() {
	sqlDB, err := models.DB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
