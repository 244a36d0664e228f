package config

import (
	"log"
	"os"
)

type Config struct {
	Port     string
	DBDSN    string
	MediaDir string
	LogFile  string
	// Base URL of the postal-code lookup service. Overridable for tests.
	CepBaseURL string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "isaarte.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./isaarte.log"
	}
	cepURL := os.Getenv("CEP_BASE_URL")
	if cepURL == "" {
		cepURL = "https://viacep.com.br"
	}

	cfg := Config{Port: port, DBDSN: dsn, MediaDir: media, LogFile: logFile, CepBaseURL: cepURL}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s CEP_BASE_URL=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.CepBaseURL)
	return cfg
}
