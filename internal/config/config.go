package config

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultNotionPageURL  = "https://reinvented-salute-989.notion.site/Nikhil-Lohia-2aaf06f4560e8069ac8ff6149020cbe2"
	defaultDriveFolderID  = "1AyDd3MiBoGe2zJdLaN2iRyGj8naJo4Np"
	defaultYouTubeAPIBase = "https://www.googleapis.com/youtube/v3"
)

// Link extraction strategies
const (
	ExtractorRegex = "regex"
	ExtractorHTML  = "html"
)

type Config struct {
	Port     string
	LogLevel string

	// Optional backing services. Empty means the feature runs degraded.
	DatabaseURL string
	RedisURL    string

	// YouTubeAPIKey is optional; without it every link stays unenriched
	YouTubeAPIKey     string
	YouTubeAPIBaseURL string

	NotionPageURL       string
	GoogleDriveFolderID string
	LinkExtractor       string
}

func Load() *Config {
	// A missing .env file is normal outside local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	config := FromEnv()

	// Command line flags override environment
	flag.StringVar(&config.Port, "port", config.Port, "Server port")
	flag.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level")
	flag.Parse()

	return config
}

// FromEnv builds a Config from the process environment only
func FromEnv() *Config {
	return &Config{
		Port:                getEnvWithDefault("PORT", "8080"),
		LogLevel:            getEnvWithDefault("LOG_LEVEL", "info"),
		DatabaseURL:         getEnvWithDefault("DATABASE_URL", ""),
		RedisURL:            getEnvWithDefault("REDIS_URL", ""),
		YouTubeAPIKey:       getEnvWithDefault("YOUTUBE_API_KEY", ""),
		YouTubeAPIBaseURL:   getEnvWithDefault("YOUTUBE_API_BASE_URL", defaultYouTubeAPIBase),
		NotionPageURL:       getEnvWithDefault("NOTION_PAGE_URL", defaultNotionPageURL),
		GoogleDriveFolderID: getEnvWithDefault("GOOGLE_DRIVE_FOLDER_ID", defaultDriveFolderID),
		LinkExtractor:       getEnvWithDefault("LINK_EXTRACTOR", ExtractorRegex),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ValidateForAPI ensures all required fields for API service are present
func (c *Config) ValidateForAPI() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}

	switch c.LinkExtractor {
	case ExtractorRegex, ExtractorHTML:
	default:
		return fmt.Errorf("unknown LINK_EXTRACTOR %q (want %q or %q)", c.LinkExtractor, ExtractorRegex, ExtractorHTML)
	}

	if err := validateHTTPURL(c.NotionPageURL); err != nil {
		return fmt.Errorf("invalid NOTION_PAGE_URL: %w", err)
	}
	if err := validateHTTPURL(c.YouTubeAPIBaseURL); err != nil {
		return fmt.Errorf("invalid YOUTUBE_API_BASE_URL: %w", err)
	}

	return nil
}

// ValidateForSeeder ensures the seeder has somewhere to write
func (c *Config) ValidateForSeeder() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for the seeder")
	}
	return nil
}

// HasYouTubeAPIKey reports whether metadata enrichment is enabled
func (c *Config) HasYouTubeAPIKey() bool {
	return c.YouTubeAPIKey != ""
}

// DriveEmbedURL returns the public grid view of the configured Drive folder
func (c *Config) DriveEmbedURL() string {
	return "https://drive.google.com/embeddedfolderview?id=" + url.QueryEscape(c.GoogleDriveFolderID) + "#grid"
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
