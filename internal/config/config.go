package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Glossary backends.
const (
	GlossaryNone     = "none"
	GlossaryFile     = "file"
	GlossaryPostgres = "postgres"
	GlossaryNeo4j    = "neo4j"
)

type Config struct {
	WorkspaceDir     string
	AnchorDir        string
	TranslatedSuffix string
	EmphasisMarker   string
	SkipPrefixes     []string
	GlossaryBackend  string
	GlossaryFile     string
	DatabaseURL      string
	Neo4jURI         string
	Neo4jUser        string
	Neo4jPassword    string
	WorkerCount      int
	ShortLineMax     int
	CodeDensityMax   float64
	ContextLookback  int
	LogLevel         string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		WorkspaceDir:     getEnv("WORKSPACE_DIR", "rpy-workspace"),
		AnchorDir:        getEnv("ANCHOR_DIR", "game"),
		TranslatedSuffix: getEnv("TRANSLATED_SUFFIX", "_translated"),
		EmphasisMarker:   getEnvRaw("EMPHASIS_MARKER", "*"),
		SkipPrefixes:     getEnvList("SKIP_PREFIXES", "define,default,image,init,play,queue,stop,voice,style,python"),
		GlossaryBackend:  strings.ToLower(getEnv("GLOSSARY_BACKEND", GlossaryNone)),
		GlossaryFile:     getEnv("GLOSSARY_FILE", "glossary"),
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/rpy_translator?sslmode=disable"),
		Neo4jURI:         getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:        getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:    getEnv("NEO4J_PASSWORD", "password"),
		WorkerCount:      getEnvInt("WORKER_COUNT", 1),
		ShortLineMax:     getEnvInt("SHORT_LINE_MAX", 5),
		CodeDensityMax:   getEnvFloat("CODE_DENSITY_MAX", 0.4),
		ContextLookback:  getEnvInt("CONTEXT_LOOKBACK", 3),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvRaw distinguishes an explicitly empty variable from an unset one.
func getEnvRaw(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvList(key, fallback string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, fallback), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
