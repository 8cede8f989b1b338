package config

import (
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var tableNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// maxSheetName is the longest worksheet name a workbook accepts. Each
// exported table becomes a sheet of the same name.
const maxSheetName = 31

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be in [%d, %d] (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be in [0, max_conns] (got %d)", c.Database.MinConns)
	}

	if err := c.Insight.validate(); err != nil {
		return fmt.Errorf("insight: %w", err)
	}
	if err := c.Export.validate(); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if c.RateLimit.AuthPerMinute <= 0 {
		return fmt.Errorf("rate_limit.auth_per_minute must be > 0 (got %d)", c.RateLimit.AuthPerMinute)
	}

	return nil
}

func (i *InsightConfig) validate() error {
	if i.MaxLimit <= 0 {
		return fmt.Errorf("max_limit must be > 0 (got %d)", i.MaxLimit)
	}
	if i.DefaultLimit <= 0 || i.DefaultLimit > i.MaxLimit {
		return fmt.Errorf("default_limit must be in [1, max_limit] (got %d)", i.DefaultLimit)
	}
	if i.MaxTrendDays <= 0 {
		return fmt.Errorf("max_trend_days must be > 0 (got %d)", i.MaxTrendDays)
	}
	return nil
}

func (e *ExportConfig) validate() error {
	if len(e.Tables) == 0 {
		return fmt.Errorf("tables must not be empty")
	}
	for _, t := range e.Tables {
		if !tableNameRe.MatchString(t) {
			return fmt.Errorf("invalid table name %q", t)
		}
		if len(t) > maxSheetName {
			return fmt.Errorf("table name %q longer than %d characters", t, maxSheetName)
		}
	}
	if e.WorkspaceDir == "" {
		return fmt.Errorf("workspace_dir is required")
	}
	if e.WorkspaceRetention <= 0 {
		return fmt.Errorf("workspace_retention must be > 0 (got %v)", e.WorkspaceRetention)
	}
	if e.ArchiveName == "" {
		return fmt.Errorf("archive_name is required")
	}
	return nil
}
