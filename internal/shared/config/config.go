package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	MaxUploadBytes  int64

	DocumentStore   string
	MongoURI        string
	MongoUser       string
	MongoPassword   string
	MongoHost       string
	MongoDatabase   string
	MongoCollection string
	DatabaseURL     string
	RunMigrations   bool
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string

	LLMProvider         string
	LLMModel            string
	LLMMaxInputChars    int
	LLMSerialize        bool
	GeminiAPIKey        string
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	OllamaURL           string
	SummaryMaxSentences int

	PDFFontPath    string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	store := normalizeDocumentStore(getEnv("DOCUMENT_STORE", "memory"))

	if env == "production" && store == "memory" {
		log.Printf("DOCUMENT_STORE=memory is not durable; configure mongo, postgres or object in production")
	}

	return Config{
		Port:                getEnv("PORT", "5000"),
		Env:                 env,
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		MaxUploadBytes:      int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		DocumentStore:       store,
		MongoURI:            os.Getenv("MONGODB_URI"),
		MongoUser:           os.Getenv("MONGODB_USER"),
		MongoPassword:       os.Getenv("MONGODB_PASSWORD"),
		MongoHost:           os.Getenv("MONGODB_HOST"),
		MongoDatabase:       getEnv("MONGODB_DB", "docqa"),
		MongoCollection:     getEnv("MONGODB_COLLECTION", "documents"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		ObjectStoreType:     normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:       getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:           getEnv("AWS_REGION", ""),
		S3Bucket:            getEnv("S3_BUCKET", ""),
		S3Prefix:            getEnv("S3_PREFIX", ""),
		RunMigrations:       getEnvBool("RUN_MIGRATIONS", true),
		LLMProvider:         normalizeProvider(getEnv("LLM_PROVIDER", "gemini")),
		LLMModel:            getEnv("LLM_MODEL", ""),
		LLMMaxInputChars:    getEnvInt("LLM_MAX_INPUT_CHARS", 0),
		LLMSerialize:        getEnvBool("LLM_SERIALIZE", false),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", ""),
		OllamaURL:           getEnv("OLLAMA_URL", "http://127.0.0.1:11434"),
		SummaryMaxSentences: getEnvInt("SUMMARY_MAX_SENTENCES", 5),
		PDFFontPath:         getEnv("PDF_FONT_PATH", ""),
		RateLimitRPS:        getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 0),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config env %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config env %s invalid float: %v", key, err)
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config env %s invalid bool: %v", key, err)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

// normalizeDocumentStore maps aliases to canonical names. Unrecognised values
// pass through so bootstrap can reject them.
func normalizeDocumentStore(raw string) string {
	switch v := strings.ToLower(strings.TrimSpace(raw)); v {
	case "":
		return "memory"
	case "mongo", "mongodb":
		return "mongo"
	case "postgres", "pg":
		return "postgres"
	default:
		return v
	}
}

func normalizeStoreType(raw string) string {
	switch v := strings.ToLower(strings.TrimSpace(raw)); v {
	case "":
		return "local"
	default:
		return v
	}
}

func normalizeProvider(raw string) string {
	switch v := strings.ToLower(strings.TrimSpace(raw)); v {
	case "":
		return "gemini"
	case "local":
		return "extractive"
	default:
		return v
	}
}
