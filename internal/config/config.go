package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Insight   InsightConfig   `yaml:"insight"`
	Export    ExportConfig    `yaml:"export"`
	Mail      MailConfig      `yaml:"mail"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TrustProxy makes X-Forwarded-For authoritative for the client address.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// SkipMigrations disables the goose run at startup. Migrations run by
	// default; a false-valued default keeps the YAML value authoritative.
	SkipMigrations bool `yaml:"skip_migrations" env:"DATABASE_SKIP_MIGRATIONS" env-default:"false"`
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"insight"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"60m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl"  env:"AUTH_REFRESH_TOKEN_TTL"  env-default:"168h"`
	ResetTokenTTL    time.Duration `yaml:"reset_token_ttl"    env:"AUTH_RESET_TOKEN_TTL"    env-default:"60m"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"12"`
	ResetURLBase     string        `yaml:"reset_url_base"     env:"AUTH_RESET_URL_BASE"     env-default:"http://localhost:3000"`
}

// InsightConfig holds dashboard query settings.
type InsightConfig struct {
	// TemplateDir overrides the embedded SQL templates when set.
	TemplateDir  string `yaml:"template_dir"   env:"INSIGHT_TEMPLATE_DIR"`
	RequireAuth  bool   `yaml:"require_auth"   env:"INSIGHT_REQUIRE_AUTH"   env-default:"false"`
	DefaultLimit int    `yaml:"default_limit"  env:"INSIGHT_DEFAULT_LIMIT"  env-default:"10"`
	MaxLimit     int    `yaml:"max_limit"      env:"INSIGHT_MAX_LIMIT"      env-default:"100"`
	MaxTrendDays int    `yaml:"max_trend_days" env:"INSIGHT_MAX_TREND_DAYS" env-default:"3650"`
}

// ExportConfig holds bulk export and report download settings.
type ExportConfig struct {
	Tables             []string      `yaml:"tables"              env:"EXPORT_TABLES"              env-default:"authors,engagements,post_metadata,posts,users"`
	ReportPath         string        `yaml:"report_path"         env:"EXPORT_REPORT_PATH"         env-default:"./reports/report.pptx"`
	WorkspaceDir       string        `yaml:"workspace_dir"       env:"EXPORT_WORKSPACE_DIR"       env-default:"./workspace"`
	WorkspaceRetention time.Duration `yaml:"workspace_retention" env:"EXPORT_WORKSPACE_RETENTION" env-default:"24h"`
	ArchiveName        string        `yaml:"archive_name"        env:"EXPORT_ARCHIVE_NAME"        env-default:"data.zip"`
}

// MailConfig holds SMTP settings. An empty Host disables delivery; messages
// are logged instead.
type MailConfig struct {
	Host     string `yaml:"host"      env:"MAIL_HOST"`
	Port     int    `yaml:"port"      env:"MAIL_PORT"      env-default:"587"`
	User     string `yaml:"user"      env:"MAIL_USER"`
	Password string `yaml:"password"  env:"MAIL_PASSWORD"`
	From     string `yaml:"from"      env:"MAIL_FROM"      env-default:"no-reply@localhost"`
	FromName string `yaml:"from_name" env:"MAIL_FROM_NAME" env-default:"Jumper Media"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits requests to the auth endpoints per client IP.
type RateLimitConfig struct {
	AuthPerMinute   int           `yaml:"auth_per_minute"  env:"RATE_LIMIT_AUTH_PER_MINUTE"  env-default:"30"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}
