package config

import (
	"os"
	"path/filepath"
)

const (
	AppName    = "Translation Agent"
	AppVersion = "1.0.0"
)

type Config struct {
	Addr      string
	DBPath    string
	DataDir   string
	AudioDir  string
	StaticDir string
	LogLevel  string
}

func Load() Config {
	addr := os.Getenv("AGENT_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	dataDir := os.Getenv("AGENT_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	path := os.Getenv("AGENT_DB_PATH")
	if path == "" {
		path = filepath.Join(dataDir, "agent.db")
	}
	staticDir := os.Getenv("AGENT_STATIC_DIR")
	if staticDir == "" {
		staticDir = detectStaticDir()
	}
	logLevel := os.Getenv("AGENT_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return Config{
		Addr:      addr,
		DBPath:    filepath.Clean(path),
		DataDir:   filepath.Clean(dataDir),
		AudioDir:  filepath.Join(filepath.Clean(dataDir), "audio"),
		StaticDir: filepath.Clean(staticDir),
		LogLevel:  logLevel,
	}
}

func detectStaticDir() string {
	candidates := []string{
		"./frontend/dist",
		"../frontend/dist",
	}
	for _, candidate := range candidates {
		indexPath := filepath.Join(candidate, "index.html")
		if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return "./frontend/dist"
}
