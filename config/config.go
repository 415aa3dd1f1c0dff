package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const AVATAR_SIZE = 64

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"db"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Firebase  FirebaseConfig  `mapstructure:"firebase"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Otel      OtelConfig      `mapstructure:"otel"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	GinMode        string        `mapstructure:"gin_mode"`
	FEOrigins      string        `mapstructure:"fe_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Origins splits the ';' separated origin list.
func (sc ServerConfig) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(sc.FEOrigins, ";") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

type DBConfig struct {
	User         string `mapstructure:"user"`
	Pass         string `mapstructure:"pass"`
	Host         string `mapstructure:"host"`
	Name         string `mapstructure:"name"`
	TLS          bool   `mapstructure:"tls"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

func (dc DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=%t&parseTime=true&clientFoundRows=true&charset=utf8mb4",
		dc.User, dc.Pass, dc.Host, dc.Name, dc.TLS)
}

type AuthProvider string

const (
	AuthProviderFirebase AuthProvider = "firebase"
	AuthProviderJWT      AuthProvider = "jwt"
)

type AuthConfig struct {
	Provider  AuthProvider `mapstructure:"provider"`
	JWTSecret string       `mapstructure:"jwt_secret"`
}

type FirebaseConfig struct {
	CredentialsPath string `mapstructure:"credentials_path"`
	CredentialsJSON string `mapstructure:"credentials_json"`
}

type StorageProvider string

const (
	StorageProviderGCS  StorageProvider = "gcs"
	StorageProviderS3   StorageProvider = "s3"
	StorageProviderNone StorageProvider = "none"
)

type StorageConfig struct {
	Provider StorageProvider `mapstructure:"provider"`
	Bucket   string          `mapstructure:"bucket"`
	S3       S3Config        `mapstructure:"s3"`
}

type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConfig struct {
	Limit  int64         `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

type OtelConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

type LogConfig struct {
	Development bool `mapstructure:"development"`
}

// envOnlyKeys have no useful default but must be known to viper so that
// AutomaticEnv values reach Unmarshal.
var envOnlyKeys = []string{
	"db.user", "db.pass", "db.host",
	"auth.jwt_secret",
	"firebase.credentials_path", "firebase.credentials_json",
	"storage.bucket", "storage.s3.endpoint", "storage.s3.access_key", "storage.s3.secret_key",
	"redis.addr", "redis.password",
	"kafka.brokers",
	"otel.endpoint",
}

func SetDefaults(v *viper.Viper) {
	for _, key := range envOnlyKeys {
		v.SetDefault(key, "")
	}
	v.SetDefault("storage.s3.use_ssl", true)
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.development", false)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.fe_origins", "http://localhost:3000")
	v.SetDefault("server.request_timeout", 15*time.Second)
	v.SetDefault("db.name", "sidr")
	v.SetDefault("db.tls", true)
	v.SetDefault("db.max_open_conns", 50)
	v.SetDefault("db.max_idle_conns", 50)
	v.SetDefault("auth.provider", string(AuthProviderFirebase))
	v.SetDefault("storage.provider", string(StorageProviderNone))
	v.SetDefault("ratelimit.limit", 60)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("kafka.topic", "sidr.events")
	v.SetDefault("otel.service_name", "sidr-be")
	v.SetDefault("otel.sample_ratio", 1.0)
}

// Load reads config.yaml (optional) and SIDR_* env vars into a Config.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("SIDR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must be set")
	}
	switch c.Auth.Provider {
	case AuthProviderFirebase:
	case AuthProviderJWT:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret must be set when auth.provider is %v", AuthProviderJWT)
		}
	default:
		return fmt.Errorf("unknown auth.provider %q", c.Auth.Provider)
	}
	switch c.Storage.Provider {
	case StorageProviderNone:
	case StorageProviderGCS, StorageProviderS3:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket must be set when storage.provider is %v", c.Storage.Provider)
		}
	default:
		return fmt.Errorf("unknown storage.provider %q", c.Storage.Provider)
	}
	return nil
}
