package config

import (
	"time"

	"goldrun/internal/domain"
)

const (
	// DefaultSubjectPath is the compiler executable looked up on PATH
	DefaultSubjectPath = "leoml"
	// DefaultArtifactRoot is the directory holding the golden-file directories
	DefaultArtifactRoot = "."
	// DefaultTimeout bounds one subject run
	DefaultTimeout = 5 * time.Second
	// DefaultLexerFlag selects the subject's lexer mode
	DefaultLexerFlag = "-l"
	// DefaultParserFlag selects the subject's parser mode
	DefaultParserFlag = "-p"
	// DefaultContextLines is the number of unchanged tokens shown around a change
	DefaultContextLines = 3
	// DefaultJobs runs cases one at a time
	DefaultJobs = 1
	// DefaultTranscriptSkipLines drops the banner line the subject prints before its parse result
	DefaultTranscriptSkipLines = 1
	// DefaultOutputJSONFile is the default results file name
	DefaultOutputJSONFile = "results.json"
	// DefaultOutputJSONDir is the default results directory
	DefaultOutputJSONDir = ".goldrun"
	// DefaultConfigFile is read from the working directory when present
	DefaultConfigFile = "goldrun.yaml"
	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"
)

// DefaultCasePlan mixes accepted (0-2) and rejected (10-16) programs.
var DefaultCasePlan = []int{0, 1, 2, 10, 11, 12, 13, 14, 15, 16}

// DefaultLayout is the directory-per-kind naming convention of the golden files
var DefaultLayout = Layout{
	SourceDir:    "ml",
	SourceSuffix: ".ml.txt",
	LexerDir:     "ts",
	LexerSuffix:  ".ts.txt",
	ParserDir:    "ast",
	ParserSuffix: ".ast.txt",
}

const (
	defaultLexerGranularity  = domain.GranularityChar
	defaultParserGranularity = domain.GranularityLine
)
