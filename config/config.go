package config

import (
	"fmt"
	"time"

	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/caarlos0/env/v11"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

type (
	Config struct {
		HTTP        HTTP
		Log         Log
		Ingest      Ingest
		Resize      Resize
		QRCode      QRCode
		Storage     Storage
		S3          S3
		PG          PG
		Kafka       Kafka
		OutboxRelay OutboxRelay
		Swagger     Swagger
	}

	HTTP struct {
		Port             string `env:"HTTP_PORT" envDefault:"8080"`
		UsePreforkMode   bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
		BodyLimit        int    `env:"HTTP_BODY_LIMIT" envDefault:"10485760"`
		CORSAllowOrigins string `env:"HTTP_CORS_ALLOW_ORIGINS" envDefault:"*"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}

	Ingest struct {
		Operation      string        `env:"INGEST_OPERATION" envDefault:"resize"`
		ProcessTimeout time.Duration `env:"INGEST_PROCESS_TIMEOUT" envDefault:"15s"`
		MaxPixels      int           `env:"INGEST_MAX_PIXELS" envDefault:"50000000"`
	}

	Resize struct {
		Width     int    `env:"RESIZE_WIDTH" envDefault:"1080"`
		Height    int    `env:"RESIZE_HEIGHT" envDefault:"720"`
		Grayscale bool   `env:"RESIZE_GRAYSCALE" envDefault:"false"`
		Format    string `env:"RESIZE_FORMAT" envDefault:"png"`
	}

	QRCode struct {
		ExposeText bool `env:"QRCODE_EXPOSE_TEXT" envDefault:"false"`
		TryHarder  bool `env:"QRCODE_TRY_HARDER" envDefault:"true"`
	}

	Storage struct {
		Backend  string `env:"STORAGE_BACKEND" envDefault:"local"`
		LocalDir string `env:"STORAGE_LOCAL_DIR" envDefault:"processed"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT"`
		Region         string        `env:"S3_REGION"`
		AccessKey      string        `env:"S3_ACCESS_KEY"`
		SecretKey      string        `env:"S3_SECRET_KEY"`
		Bucket         string        `env:"S3_BUCKET"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	PG struct {
		Enabled bool   `env:"PG_ENABLED" envDefault:"false"`
		PoolMax int    `env:"PG_POOL_MAX" envDefault:"2"`
		URL     string `env:"PG_URL"`
	}

	Kafka struct {
		Enabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
		Brokers []string `env:"KAFKA_BROKERS"`
		Topic   string   `env:"KAFKA_TOPIC" envDefault:"image-ingestions"`
	}

	OutboxRelay struct {
		PollInterval        time.Duration `env:"OUTBOX_RELAY_POLL_INTERVAL" envDefault:"2s"`
		MarkFailedInterval  time.Duration `env:"OUTBOX_RELAY_MARK_FAILED_INTERVAL" envDefault:"2m"`
		CleanupInterval     time.Duration `env:"OUTBOX_RELAY_CLEANUP_INTERVAL" envDefault:"24h"`
		ProcessBatchTimeout time.Duration `env:"OUTBOX_RELAY_PROCESS_BATCH_TIMEOUT" envDefault:"15s"`
		ShutdownTimeout     time.Duration `env:"OUTBOX_RELAY_SHUTDOWN_TIMEOUT" envDefault:"5s"`
		BatchSize           int           `env:"OUTBOX_RELAY_BATCH_SIZE" envDefault:"100"`
		MaxRetries          int           `env:"OUTBOX_RELAY_MAX_RETRIES" envDefault:"3"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Ingest.Operation {
	case entity.OperationResize:
		if c.Resize.Width <= 0 || c.Resize.Height <= 0 {
			return fmt.Errorf("RESIZE_WIDTH and RESIZE_HEIGHT must be positive")
		}
	case entity.OperationQRCode:
	default:
		return fmt.Errorf("INGEST_OPERATION must be one of %q, %q, got %q",
			entity.OperationResize, entity.OperationQRCode, c.Ingest.Operation)
	}

	if c.Ingest.MaxPixels <= 0 {
		return fmt.Errorf("INGEST_MAX_PIXELS must be positive")
	}

	switch c.Storage.Backend {
	case StorageLocal:
		if c.Storage.LocalDir == "" {
			return fmt.Errorf("STORAGE_LOCAL_DIR is required for local storage")
		}
	case StorageS3:
		if c.S3.Bucket == "" || c.S3.AccessKey == "" || c.S3.SecretKey == "" {
			return fmt.Errorf("S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY are required for s3 storage")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of %q, %q, got %q",
			StorageLocal, StorageS3, c.Storage.Backend)
	}

	if c.PG.Enabled && c.PG.URL == "" {
		return fmt.Errorf("PG_URL is required when PG_ENABLED")
	}

	if c.Kafka.Enabled {
		if !c.PG.Enabled {
			return fmt.Errorf("KAFKA_ENABLED requires PG_ENABLED, events are relayed from the outbox")
		}
		if len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "" {
			return fmt.Errorf("KAFKA_BROKERS and KAFKA_TOPIC are required when KAFKA_ENABLED")
		}
	}

	return nil
}
