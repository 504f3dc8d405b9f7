package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"goldrun/internal/domain"
	gferrors "goldrun/internal/errors"
)

// fileConfig mirrors goldrun.yaml. Zero values leave defaults untouched.
type fileConfig struct {
	Subject           string  `yaml:"subject"`
	Timeout           string  `yaml:"timeout"`
	Cases             []int   `yaml:"cases"`
	ArtifactRoot      string  `yaml:"artifact_root"`
	Layout            *Layout `yaml:"layout"`
	LexerFlag         string  `yaml:"lexer_flag"`
	ParserFlag        string  `yaml:"parser_flag"`
	LexerGranularity  string  `yaml:"lexer_granularity"`
	ParserGranularity string  `yaml:"parser_granularity"`
	ContextLines      *int    `yaml:"context_lines"`
	PassInputPath     *bool   `yaml:"pass_input_path"`
	Jobs              int     `yaml:"jobs"`
	TranscriptSkip    *int    `yaml:"transcript_skip_lines"`
	OutputDir         string  `yaml:"output_dir"`
	OutputFile        string  `yaml:"output_file"`
	HistoryDSN        string  `yaml:"history_dsn"`
}

// applyFile merges the YAML config at path. A missing file is only an error when it was requested explicitly.
func (c *Config) applyFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return gferrors.WrapConfig(err, "failed to read config file")
	}
	return c.ApplyYAML(data)
}

// ApplyYAML validates and merges a YAML config document.
func (c *Config) ApplyYAML(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return gferrors.WrapConfig(err, "failed to parse config file")
	}
	if err := ValidateDocument(doc); err != nil {
		return gferrors.WrapConfig(err, "invalid config file")
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return gferrors.WrapConfig(err, "failed to parse config file")
	}
	return c.merge(fc)
}

func (c *Config) merge(fc fileConfig) error {
	if fc.Subject != "" {
		c.SubjectPath = fc.Subject
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return gferrors.WrapConfig(err, "invalid timeout")
		}
		c.Timeout = d
	}
	if len(fc.Cases) > 0 {
		c.CasePlan = append([]int(nil), fc.Cases...)
	}
	if fc.ArtifactRoot != "" {
		c.ArtifactRoot = fc.ArtifactRoot
	}
	if fc.Layout != nil {
		c.Layout = mergeLayout(c.Layout, *fc.Layout)
	}
	if fc.LexerFlag != "" {
		c.LexerFlag = fc.LexerFlag
	}
	if fc.ParserFlag != "" {
		c.ParserFlag = fc.ParserFlag
	}
	if fc.LexerGranularity != "" {
		c.LexerGranularity = domain.Granularity(fc.LexerGranularity)
	}
	if fc.ParserGranularity != "" {
		c.ParserGranularity = domain.Granularity(fc.ParserGranularity)
	}
	if fc.ContextLines != nil {
		c.ContextLines = *fc.ContextLines
	}
	if fc.PassInputPath != nil {
		c.PassInputPath = *fc.PassInputPath
	}
	if fc.Jobs > 0 {
		c.Jobs = fc.Jobs
	}
	if fc.TranscriptSkip != nil {
		c.TranscriptSkipLines = *fc.TranscriptSkip
	}
	if fc.OutputDir != "" {
		c.OutputJSONDir = fc.OutputDir
	}
	if fc.OutputFile != "" {
		c.OutputJSONFile = fc.OutputFile
	}
	if fc.HistoryDSN != "" {
		c.History.DSN = fc.HistoryDSN
	}
	return nil
}

func mergeLayout(base, override Layout) Layout {
	pick := func(a, b string) string {
		if b != "" {
			return b
		}
		return a
	}
	return Layout{
		SourceDir:    pick(base.SourceDir, override.SourceDir),
		SourceSuffix: pick(base.SourceSuffix, override.SourceSuffix),
		LexerDir:     pick(base.LexerDir, override.LexerDir),
		LexerSuffix:  pick(base.LexerSuffix, override.LexerSuffix),
		ParserDir:    pick(base.ParserDir, override.ParserDir),
		ParserSuffix: pick(base.ParserSuffix, override.ParserSuffix),
	}
}
