package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	SMTP          SMTPConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Certificate   CertificateConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"EWASTE_APP_ENV" required:"true"`
	Port         string `envconfig:"EWASTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"EWASTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EWASTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"EWASTE_DB_DSN"`
	Driver string `envconfig:"EWASTE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"EWASTE_DB_HOST"`
	LegacyPort     int    `envconfig:"EWASTE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"EWASTE_DB_USER"`
	LegacyPassword string `envconfig:"EWASTE_DB_PASSWORD"`
	LegacyName     string `envconfig:"EWASTE_DB_NAME"`
	LegacySSLMode  string `envconfig:"EWASTE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"EWASTE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"EWASTE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"EWASTE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"EWASTE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"EWASTE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"EWASTE_REDIS_ADDR"`
	Password     string        `envconfig:"EWASTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"EWASTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"EWASTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EWASTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EWASTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EWASTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EWASTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"EWASTE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"EWASTE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"EWASTE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"EWASTE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"EWASTE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"EWASTE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"EWASTE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"EWASTE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"EWASTE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"EWASTE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"EWASTE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"EWASTE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"EWASTE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"EWASTE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"EWASTE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type SMTPConfig struct {
	Host     string `envconfig:"EWASTE_SMTP_HOST"`
	Port     string `envconfig:"EWASTE_SMTP_PORT" default:"587"`
	Username string `envconfig:"EWASTE_SMTP_USERNAME"`
	Password string `envconfig:"EWASTE_SMTP_PASSWORD"`
	From     string `envconfig:"EWASTE_SMTP_FROM" default:"noreply@greencycle.app"`
	FromName string `envconfig:"EWASTE_SMTP_FROM_NAME" default:"GreenCycle"`
}

// Enabled reports whether outbound mail is configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

type GCPConfig struct {
	ProjectID              string `envconfig:"EWASTE_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"EWASTE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"EWASTE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName  string `envconfig:"EWASTE_GCS_BUCKET_NAME" required:"true"`
	UploadMaxMB int    `envconfig:"EWASTE_GCS_UPLOAD_MAX_MB" default:"10"`
}

type CertificateConfig struct {
	CompletedThreshold int `envconfig:"EWASTE_CERTIFICATE_COMPLETED_THRESHOLD" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"EWASTE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"EWASTE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
