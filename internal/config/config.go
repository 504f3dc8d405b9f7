package config

import (
	"path/filepath"
	"time"

	"goldrun/internal/domain"
	gferrors "goldrun/internal/errors"
)

// Config holds all configuration for the harness
type Config struct {
	// Subject settings
	SubjectPath   string
	LexerFlag     string
	ParserFlag    string
	Timeout       time.Duration
	PassInputPath bool

	// Golden files
	ArtifactRoot string
	Layout       Layout
	CasePlan     []int

	// Comparison settings
	LexerGranularity  domain.Granularity
	ParserGranularity domain.Granularity
	ContextLines      int

	// Execution settings
	Jobs int

	// Leading subject output lines dropped from inspection transcripts
	TranscriptSkipLines int

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Run history database
	History History

	// Command flags
	Flags Flags
}

// Layout names the directory and filename suffix of each artifact kind
type Layout struct {
	SourceDir    string `yaml:"source_dir" json:"source_dir"`
	SourceSuffix string `yaml:"source_suffix" json:"source_suffix"`
	LexerDir     string `yaml:"lexer_dir" json:"lexer_dir"`
	LexerSuffix  string `yaml:"lexer_suffix" json:"lexer_suffix"`
	ParserDir    string `yaml:"parser_dir" json:"parser_dir"`
	ParserSuffix string `yaml:"parser_suffix" json:"parser_suffix"`
}

// History holds the optional MySQL connection settings
type History struct {
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// Enabled reports whether a history database was configured.
func (h History) Enabled() bool {
	return h.DSN != "" || h.Database != ""
}

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
	Filter       string // title pattern applied to the plan
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		SubjectPath:         DefaultSubjectPath,
		LexerFlag:           DefaultLexerFlag,
		ParserFlag:          DefaultParserFlag,
		Timeout:             DefaultTimeout,
		PassInputPath:       true,
		ArtifactRoot:        DefaultArtifactRoot,
		Layout:              DefaultLayout,
		LexerGranularity:    defaultLexerGranularity,
		ParserGranularity:   defaultParserGranularity,
		ContextLines:        DefaultContextLines,
		Jobs:                DefaultJobs,
		TranscriptSkipLines: DefaultTranscriptSkipLines,
		OutputJSONFile:      DefaultOutputJSONFile,
		OutputJSONDir:       DefaultOutputJSONDir,
		History:             History{Port: "3306"},
	}
	// Copy the default plan so callers cannot alter the package value
	cfg.CasePlan = make([]int, len(DefaultCasePlan))
	copy(cfg.CasePlan, DefaultCasePlan)
	return cfg
}

// Load builds a config from defaults, the config file, the environment and flags, in that order.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := loadDotEnv(DefaultEnvFile); err != nil {
		return nil, err
	}

	path, explicit := flags.ConfigPath, true
	if path == "" {
		path, explicit = DefaultConfigFile, false
	}
	if err := cfg.applyFile(path, explicit); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFlags overrides settings with non-zero flag values.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.SubjectPath != "" {
		c.SubjectPath = flags.SubjectPath
	}
	if flags.ArtifactRoot != "" {
		c.ArtifactRoot = flags.ArtifactRoot
	}
	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
	if flags.Jobs > 0 {
		c.Jobs = flags.Jobs
	}
	if flags.NoInputPath {
		c.PassInputPath = false
	}
}

// Validate checks settings that the schema cannot express.
func (c *Config) Validate() error {
	if c.SubjectPath == "" {
		return gferrors.Config("subject path must not be empty")
	}
	if c.Timeout <= 0 {
		return gferrors.Configf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Jobs < 1 {
		return gferrors.Configf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.ContextLines < 0 {
		return gferrors.Configf("context lines must not be negative, got %d", c.ContextLines)
	}
	if c.TranscriptSkipLines < 0 {
		return gferrors.Configf("transcript skip lines must not be negative, got %d", c.TranscriptSkipLines)
	}
	if len(c.CasePlan) == 0 {
		return gferrors.Config("case plan is empty")
	}
	for _, g := range []domain.Granularity{c.LexerGranularity, c.ParserGranularity} {
		if _, err := ParseGranularity(string(g)); err != nil {
			return err
		}
	}
	if c.Flags.Granularity != "" {
		if _, err := ParseGranularity(c.Flags.Granularity); err != nil {
			return err
		}
	}
	return nil
}

// ParseGranularity converts a configured granularity name.
func ParseGranularity(s string) (domain.Granularity, error) {
	switch domain.Granularity(s) {
	case domain.GranularityChar, domain.GranularityLine:
		return domain.Granularity(s), nil
	}
	return "", gferrors.Configf("unknown granularity %q (want %q or %q)", s, domain.GranularityChar, domain.GranularityLine)
}

// GetGranularity returns the comparison granularity for a suite kind, honoring the flag override.
func (c *Config) GetGranularity(kind domain.CaseKind) domain.Granularity {
	if c.Flags.Granularity != "" {
		return domain.Granularity(c.Flags.Granularity)
	}
	if kind == domain.KindLexer {
		return c.LexerGranularity
	}
	return c.ParserGranularity
}

// GetModeFlag returns the subject flag for a suite kind.
func (c *Config) GetModeFlag(kind domain.CaseKind) string {
	if kind == domain.KindLexer {
		return c.LexerFlag
	}
	return c.ParserFlag
}

// GetOutputPath returns the full path to the results JSON file.
// Resolves to an absolute path so run and review always use the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
