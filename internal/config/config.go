package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	// StoreDriver selects the persistence gateway: fs, sqlite, postgres or memory.
	StoreDriver string
	// StoreBasePath is the collection directory for the fs driver.
	StoreBasePath string
	DBDSN         string

	AuthSecret  string
	TokenTTLHrs int
	BcryptCost  int

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:      addr,
		StoreDriver:   envOr("STORE_DRIVER", "fs"),
		StoreBasePath: envOr("STORE_BASE_PATH", "./data"),
		DBDSN:         envOr("DB_DSN", ""),
		AuthSecret:    envOr("AUTH_HMAC_SECRET", "examprom-dev-key"),
		TokenTTLHrs:   envInt("TOKEN_TTL_HOURS", 8),
		BcryptCost:    envInt("BCRYPT_COST", 12),
		CORSOrigins:   csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
