package config

import (
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config es la única fuente de configuración del proceso.
// Nada fuera de este paquete debería leer os.Getenv directamente.
type Config struct {
	AppName string `env:"APP_NAME,default=pet-clinic"`
	AppEnv  string `env:"APP_ENV,default=dev"`

	Port             string        `env:"PORT,default=8080"`
	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT,default=5s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT,default=10s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	// Sin DB_DSN se usa el store in-memory.
	DBDSN          string        `env:"DB_DSN"`
	DBMigrate      bool          `env:"DB_MIGRATE,default=true"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS,default=10"`
	DBSlowQuery    time.Duration `env:"DB_SLOW_QUERY,default=200ms"`

	JWTSecret    string        `env:"JWT_SECRET"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN,default=1h"`
	JWTIssuer    string        `env:"JWT_ISSUER,default=pet-clinic"`
	BcryptCost   int           `env:"BCRYPT_COST,default=10"`
	AuthRequired bool          `env:"AUTH_REQUIRED,default=false"`

	// Sin REDIS_ADDR la denylist de tokens vive en memoria del proceso.
	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB,default=0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX,default=pet-clinic:"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	MetricsEnabled bool `env:"METRICS_ENABLED,default=true"`
}

// Load carga opcionalmente un .env y mapea el environ a Config.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, errors.Wrapf(err, "failed to load configuration file %s", path)
		}
	}

	c := &Config{}
	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		return nil, errors.Wrap(err, "failed to map env variables to Config")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production") || strings.EqualFold(c.AppEnv, "prod")
}

func (c *Config) validate() error {
	if c.JWTExpiresIn <= 0 {
		return errors.Errorf("JWT_EXPIRES_IN must be positive, got %s", c.JWTExpiresIn)
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 bytes in production")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost)
	}
	return nil
}
