package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	gferrors "goldrun/internal/errors"
)

// Environment variables read after the config file.
const (
	EnvSubject      = "GOLDRUN_SUBJECT"
	EnvArtifactRoot = "GOLDRUN_ARTIFACT_ROOT"
	EnvTimeout      = "GOLDRUN_TIMEOUT"
	EnvJobs         = "GOLDRUN_JOBS"
	EnvHistoryDSN   = "GOLDRUN_HISTORY_DSN"
	EnvDBHost       = "GOLDRUN_DB_HOST"
	EnvDBPort       = "GOLDRUN_DB_PORT"
	EnvDBUser       = "GOLDRUN_DB_USERNAME"
	EnvDBPassword   = "GOLDRUN_DB_PASSWORD"
	EnvDBDatabase   = "GOLDRUN_DB_DATABASE"
)

// loadDotEnv loads path into the process environment without overriding existing variables.
// A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return gferrors.WrapConfig(err, "invalid "+path)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvSubject); v != "" {
		c.SubjectPath = v
	}
	if v := os.Getenv(EnvArtifactRoot); v != "" {
		c.ArtifactRoot = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return gferrors.WrapConfig(err, EnvTimeout)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvJobs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return gferrors.WrapConfig(err, EnvJobs)
		}
		c.Jobs = n
	}
	if v := os.Getenv(EnvHistoryDSN); v != "" {
		c.History.DSN = v
	}
	if v := os.Getenv(EnvDBHost); v != "" {
		c.History.Host = v
	}
	if v := os.Getenv(EnvDBPort); v != "" {
		c.History.Port = v
	}
	if v := os.Getenv(EnvDBUser); v != "" {
		c.History.User = v
	}
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.History.Password = v
	}
	if v := os.Getenv(EnvDBDatabase); v != "" {
		c.History.Database = v
	}
	return nil
}
