// Package config reads settings from the environment, loading .env for local runs.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/joho/godotenv"
)

const DefaultBaseURL = "https://mopsov.twse.com.tw"

type Config struct {
	Env      string
	Port     int
	LogLevel string

	OutputDir   string
	BaseURL     string
	HTTPTimeout time.Duration
	BatchDelay  time.Duration

	AllowOrigins   []string
	APITokenSecret string

	AWS   AWSConfig
	MySQL MySQLConfig
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	BucketPrefix    string
	TableName       string
}

// Enabled reports whether any AWS backed sink is configured.
func (c AWSConfig) Enabled() bool {
	return c.BucketName != "" || c.TableName != ""
}

type MySQLConfig struct {
	User     string
	Password string
	Database string
	Host     string
	Port     int
}

// Enabled reports whether MySQL persistence is configured.
func (c MySQLConfig) Enabled() bool {
	return c.Host != "" && c.Database != ""
}

// DSN returns the go-sql-driver/mysql connection string.
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// Load reads the configuration. With ENV=local the .env file is loaded first.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if env == "local" {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	port, err := intEnv("PORT", 5001)
	if err != nil {
		return nil, err
	}
	mysqlPort, err := intEnv("MYSQL_PORT", 3306)
	if err != nil {
		return nil, err
	}
	timeout, err := durationEnv("HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	delay, err := durationEnv("BATCH_DELAY", 2*time.Second)
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:            os.Getenv("ENV"),
		Port:           port,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		OutputDir:      getEnv("OUTPUT_DIR", "data"),
		BaseURL:        strings.TrimRight(getEnv("MOPS_BASE_URL", DefaultBaseURL), "/"),
		HTTPTimeout:    timeout,
		BatchDelay:     delay,
		AllowOrigins:   splitList(os.Getenv("ALLOW_ORIGINS")),
		APITokenSecret: os.Getenv("API_TOKEN_SECRET"),
		AWS: AWSConfig{
			Region:          os.Getenv("REGION"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("BUCKET_NAME"),
			BucketPrefix:    getEnv("BUCKET_PREFIX", "revenue"),
			TableName:       os.Getenv("DYNAMO_TABLE_NAME"),
		},
		MySQL: MySQLConfig{
			User:     os.Getenv("MYSQL_USER"),
			Password: os.Getenv("MYSQL_ROOT_PASSWORD"),
			Database: os.Getenv("MYSQL_DATABASE"),
			// docker compose ではサービス名 (db) を指定する
			Host: os.Getenv("MYSQL_HOST"),
			Port: mysqlPort,
		},
	}, nil
}

// LoadAWS builds the SDK configuration. Static keys are used when both are set,
// otherwise the default credential chain applies.
func (c AWSConfig) LoadAWS(ctx context.Context) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if c.Region != "" {
		opts = append(opts, awsconfig.WithRegion(c.Region))
	}
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
