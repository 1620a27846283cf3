package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Host        string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port        string `envconfig:"PORT" default:"5000"`
	ReadTimeout int    `envconfig:"SERVER_TIMEOUT" default:"10"`
}

type Mongo struct {
	URI             string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database        string `envconfig:"MONGO_DB" default:"landing"`
	ConnectAttempts uint   `envconfig:"MONGO_CONNECT_ATTEMPTS" default:"0"`
}

type Db struct {
	Dialect        string `envconfig:"DB_DIALECT" default:"sqlite"`
	Source         string `envconfig:"DB_NAME" default:"landing.db"`
	MigrationsPath string `envconfig:"DB_MIGRATIONS_DIR" default:"./migrations"`
}

type Redis struct {
	Enabled  bool          `envconfig:"REDIS_ENABLED" default:"false"`
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	SeenTTL  time.Duration `envconfig:"REDIS_SEEN_TTL" default:"24h"`
}

type CORS struct {
	AllowedOrigins  []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	TrustedSuffixes []string `envconfig:"CORS_TRUSTED_SUFFIXES" default:".vercel.app"`
}

type Config struct {
	Env            string        `envconfig:"APP_ENV" default:"development"`
	StorageBackend string        `envconfig:"STORAGE_BACKEND" default:"mongo"`
	StorageTimeout time.Duration `envconfig:"STORAGE_TIMEOUT" default:"5s"`
	LogsPath       string        `envconfig:"LOGS_PATH" default:"./logs/landing-api.log"`
	AccessLogPath  string        `envconfig:"ACCESS_LOG_PATH" default:"./logs/access.log"`

	Server Server
	Mongo  Mongo
	DB     Db
	Redis  Redis
	CORS   CORS
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
