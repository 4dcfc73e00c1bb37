package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string
	LogLevel   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SeenCacheTTL  time.Duration

	ListingBaseURL  string
	ListingEndpoint string
	ListingPageName string
	ListSelector    string
	NavSelector     string
	NamespacePrefix string

	UserAgent    string
	RenderJS     bool
	CrawlDelay   time.Duration
	FetchTimeout time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "user"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "password"),
		PostgresDB:       getEnv("POSTGRES_DB", "catalog"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		SeenCacheTTL:     getEnvAsDuration("SEEN_CACHE_TTL_SECONDS", 48*3600) * time.Second,
		ListingBaseURL:   getEnv("LISTING_BASE_URL", "https://en.wikipedia.org"),
		ListingEndpoint:  getEnv("LISTING_ENDPOINT", "https://en.wikipedia.org/w/index.php"),
		ListingPageName:  getEnv("LISTING_PAGE_NAME", "Special:AllPages"),
		ListSelector:     getEnv("LIST_SELECTOR", "div.mw-allpages-body"),
		NavSelector:      getEnv("NAV_SELECTOR", "div.mw-allpages-nav"),
		NamespacePrefix:  getEnv("NAMESPACE_PREFIX", "/wiki/"),
		UserAgent:        getEnv("USER_AGENT", "catalog-crawler (educational purpose)"),
		RenderJS:         getEnvAsBool("RENDER_JS", false),
		CrawlDelay:       getEnvAsDuration("CRAWL_DELAY_MS", 1000) * time.Millisecond,
		FetchTimeout:     getEnvAsDuration("FETCH_TIMEOUT_SECONDS", 30) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback))
}
