package cli

import (
	"time"

	"goldrun/internal/config"
	gferrors "goldrun/internal/errors"
	"goldrun/internal/golden"
)

// Flags holds command-line flags
type Flags struct {
	ConfigPath   string
	SubjectPath  string
	ArtifactRoot string
	Timeout      time.Duration
	Cases        string
	Jobs         int
	Granularity  string
	NoInputPath  bool
	Filter       string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigPath:   f.ConfigPath,
		SubjectPath:  f.SubjectPath,
		ArtifactRoot: f.ArtifactRoot,
		Timeout:      f.Timeout,
		Cases:        f.Cases,
		Jobs:         f.Jobs,
		Granularity:  f.Granularity,
		NoInputPath:  f.NoInputPath,
		Filter:       f.Filter,
	}
}

// LoadConfig builds the effective config and applies the --cases plan and the --filter title pattern.
func (f *Flags) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.ToConfigFlags())
	if err != nil {
		return nil, err
	}
	if f.Cases != "" {
		plan, err := golden.ParsePlan(f.Cases)
		if err != nil {
			return nil, err
		}
		cfg.CasePlan = plan
	}
	if f.Filter != "" {
		cfg.CasePlan = golden.NewStore(cfg).FilterByTitle(cfg.CasePlan, f.Filter)
		if len(cfg.CasePlan) == 0 {
			return nil, gferrors.Configf("no case title matches %q", f.Filter)
		}
	}
	return cfg, nil
}
