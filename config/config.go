package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config holds every runtime setting. It is read once in main and passed down.
type Config struct {
	Port     string
	MongoURI string
	Database string
	Backend  string
	SeedFile string
	Greeting string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can supply their own.
func FromEnv(getenv func(string) string) Config {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	port := get("PORT", "3000")
	if port[0] != ':' {
		port = ":" + port
	}

	uri := getenv("MongoDB")
	if uri == "" {
		uri = get("MONGODB_URI", "mongodb://localhost:27017")
	}

	backend := get("STORE_BACKEND", BackendMongo)
	if backend != BackendMemory {
		backend = BackendMongo
	}

	return Config{
		Port:     port,
		MongoURI: uri,
		Database: get("MONGODB_DB", "roomDB"),
		Backend:  backend,
		SeedFile: getenv("SEED_FILE"),
		Greeting: get("GREETING", "Bhang Bhosda World!"),

		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		RedisDB:       atoi(getenv("REDIS_DB"), 0),

		RateLimitRPS:   atof(getenv("RATE_LIMIT_RPS"), 0),
		RateLimitBurst: atoi(getenv("RATE_LIMIT_BURST"), 1),
	}
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("[config] ignoring invalid integer %q", s)
		return def
	}
	return n
}

func atof(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		log.Printf("[config] ignoring invalid rate %q", s)
		return def
	}
	return f
}
