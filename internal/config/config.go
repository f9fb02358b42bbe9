package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type CardConfig struct {
	Env          string `yaml:"env"`
	CardDB       `yaml:"card_db"`
	LogConfig    `yaml:"log_config"`
	MetricsHTTP  `yaml:"metrics_http"`
	KafkaService `yaml:"kafka-service"`
	Generation   `yaml:"generation"`
	Lifecycle    `yaml:"lifecycle"`
	Sync         `yaml:"sync"`
	Drafts       `yaml:"drafts"`
}

type CardDB struct {
	Dsn string `yaml:"dsn"`
	// Optional directory of hand-written SQL migrations applied on boot.
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type MetricsHTTP struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"card-events"`
}

type Generation struct {
	// Hard cap on the global card sequence space.
	MaxSequence int `yaml:"max_sequence" env-default:"10000"`
	// Bulk inserts are split into chunks to respect backend throughput limits.
	ChunkSize  int           `yaml:"chunk_size" env-default:"1000"`
	ChunkDelay time.Duration `yaml:"chunk_delay" env-default:"200ms"`
}

type Lifecycle struct {
	// How long an activated card stays valid.
	ActivationTTL time.Duration `yaml:"activation_ttl" env-default:"8760h"`
	// What to do when a range is re-assigned to a different clinic:
	// "reject" (default) or "overwrite".
	ReassignPolicy string `yaml:"reassign_policy" env-default:"reject"`
}

type Sync struct {
	PollInterval     time.Duration `yaml:"poll_interval" env-default:"30s"`
	NotificationSize int           `yaml:"notification_size" env-default:"50"`
}

type Drafts struct {
	DebounceDelay time.Duration `yaml:"debounce_delay" env-default:"5s"`
	TTL           time.Duration `yaml:"ttl" env-default:"168h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"1h"`
}

func MustLoad() *CardConfig {

	// Processing env config variable and file
	configPath := os.Getenv("CARD_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("CARD_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg CardConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
