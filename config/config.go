package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Record store backends selectable with STORE.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Store      string
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	CORS       CORSConfig
	MQTT       MQTTConfig
	DataSource DataSourceConfig
}

type ServerConfig struct {
	Port      int
	StaticDir string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// RedisConfig is disabled when Host is empty.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool { return r.Host != "" }

type CORSConfig struct {
	AllowedOrigins string
}

// MQTTConfig is disabled when URL is empty.
type MQTTConfig struct {
	URL   string
	Topic string
}

func (m MQTTConfig) Enabled() bool { return m.URL != "" }

type DataSourceConfig struct {
	Default     string
	SeedDefault bool
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("store", StorePostgres)
	v.SetDefault("port", 5000)
	v.SetDefault("static_dir", "./public")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "vehicle")
	v.SetDefault("db_password", "vehicle_dev_password")
	v.SetDefault("db_name", "vehicle_forecast")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("redis_host", "")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("mqtt_url", "")
	v.SetDefault("mqtt_topic", "vehicle-forecast/historical/+")
	v.SetDefault("default_data_source", "database")
	v.SetDefault("seed_default_data", true)

	if path := os.Getenv("VEHICLE_FORECAST_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		log.Printf("config loaded from %s", path)
	}

	v.AutomaticEnv()

	serverPort, err := getInt(v, "port")
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	dbPort, err := getInt(v, "db_port")
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	redisPort, err := getInt(v, "redis_port")
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	redisDB, err := getInt(v, "redis_db")
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	seed, err := getBool(v, "seed_default_data")
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEFAULT_DATA: %w", err)
	}

	cfg := &Config{
		Store: strings.ToLower(strings.TrimSpace(v.GetString("store"))),
		Server: ServerConfig{
			Port:      serverPort,
			StaticDir: v.GetString("static_dir"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     dbPort,
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis_host"),
			Port:     redisPort,
			Password: v.GetString("redis_password"),
			DB:       redisDB,
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("cors_allowed_origins"),
		},
		MQTT: MQTTConfig{
			URL:   v.GetString("mqtt_url"),
			Topic: v.GetString("mqtt_topic"),
		},
		DataSource: DataSourceConfig{
			Default:     strings.TrimSpace(v.GetString("default_data_source")),
			SeedDefault: seed,
		},
	}
	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("invalid STORE %q: must be %s or %s", cfg.Store, StorePostgres, StoreMemory)
	}
	if cfg.DataSource.Default == "" {
		return nil, fmt.Errorf("DEFAULT_DATA_SOURCE must not be empty")
	}

	return cfg, nil
}

// getInt parses the raw value so a malformed setting is reported instead of
// silently becoming zero.
func getInt(v *viper.Viper, key string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(v.GetString(key)))
}

func getBool(v *viper.Viper, key string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
}
