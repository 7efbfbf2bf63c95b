package fatura

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Colors for terminal output
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

// Config holds the CLI configuration
type Config struct {
	APIURL   string
	APIToken string
	Brand    string // CLI branding shown in TUI (default: "Fatura CLI")
	LayoutDB string // Path to the grid-layout database (default: ~/.fatura/layouts.db)
}

// LoadConfig reads .fatura.env (or plain environment variables). The file is
// searched in the working directory and next to the binary; a missing file is
// fine as long as the env is set.
func LoadConfig() (*Config, error) {
	paths := []string{
		".fatura.env",
		"../.fatura.env",
		filepath.Join(filepath.Dir(os.Args[0]), ".fatura.env"),
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err != nil {
				return nil, fmt.Errorf("cannot load config %s: %w", p, err)
			}
			break
		}
	}

	config := &Config{
		APIURL:   os.Getenv("FATURA_API_URL"),
		APIToken: os.Getenv("FATURA_API_TOKEN"),
		Brand:    os.Getenv("FATURA_BRAND"),
		LayoutDB: os.Getenv("FATURA_LAYOUT_DB"),
	}

	if config.Brand == "" {
		config.Brand = "Fatura CLI"
	}
	if config.LayoutDB == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		config.LayoutDB = filepath.Join(home, ".fatura", "layouts.db")
	}

	if config.APIURL == "" || config.APIToken == "" {
		return nil, fmt.Errorf("missing required config: FATURA_API_URL, FATURA_API_TOKEN")
	}

	return config, nil
}
