package golden

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"goldrun/internal/config"
	"goldrun/internal/domain"
	gferrors "goldrun/internal/errors"
)

// Store resolves case identifiers to golden-file artifacts under an artifact root
type Store struct {
	root   string
	layout config.Layout
}

// NewStore creates a Store for the configured artifact root and layout
func NewStore(cfg *config.Config) *Store {
	return &Store{root: cfg.ArtifactRoot, layout: cfg.Layout}
}

func (s *Store) dirAndSuffix(kind domain.CaseKind) (string, string) {
	switch kind {
	case domain.KindLexer:
		return s.layout.LexerDir, s.layout.LexerSuffix
	case domain.KindParser:
		return s.layout.ParserDir, s.layout.ParserSuffix
	default:
		return s.layout.SourceDir, s.layout.SourceSuffix
	}
}

// Path returns the artifact path of a case, e.g. ast/07.ast.txt for a parser golden file.
func (s *Store) Path(id int, kind domain.CaseKind) string {
	dir, suffix := s.dirAndSuffix(kind)
	return filepath.Join(s.root, dir, fmt.Sprintf("%02d%s", id, suffix))
}

// Load reads the full text of one artifact.
func (s *Store) Load(id int, kind domain.CaseKind) (string, error) {
	path := s.Path(id, kind)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", gferrors.ArtifactNotFound(id, path)
		}
		return "", fmt.Errorf("read %s artifact %s: %w", kind, path, err)
	}
	return string(data), nil
}

// Exists reports whether an artifact file is present.
func (s *Store) Exists(id int, kind domain.CaseKind) bool {
	info, err := os.Stat(s.Path(id, kind))
	return err == nil && !info.IsDir()
}

// Resolve builds the TestCase for id. Kind selects the expected artifact;
// KindSource resolves only the input, as the inspection suite needs.
// withTitle strips a "(* title *)" first line from the source.
func (s *Store) Resolve(id int, kind domain.CaseKind, withTitle bool) (domain.TestCase, error) {
	tc := domain.TestCase{
		ID:        id,
		Kind:      kind,
		InputPath: s.Path(id, domain.KindSource),
	}

	text, err := s.Load(id, domain.KindSource)
	if err != nil {
		return tc, err
	}
	if withTitle {
		tc.Title, tc.Source = ParseSource(text)
	} else {
		tc.Source = text
	}

	if kind != domain.KindSource {
		tc.ExpectedPath = s.Path(id, kind)
		if !s.Exists(id, kind) {
			return tc, gferrors.ArtifactNotFound(id, tc.ExpectedPath)
		}
	}
	return tc, nil
}

// Available scans the kind's directory and returns the ids that follow the naming convention.
func (s *Store) Available(kind domain.CaseKind) ([]int, error) {
	dir, suffix := s.dirAndSuffix(kind)
	root := filepath.Clean(filepath.Join(s.root, dir))

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("artifact directory does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("artifact path is not a directory: %s", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var ids []int
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}
		stem := strings.TrimSuffix(name, suffix)
		if len(stem) < 2 {
			continue
		}
		id, err := strconv.Atoi(stem)
		if err != nil || id < 0 || fmt.Sprintf("%02d", id) != stem {
			continue
		}
		ids = append(ids, id)
	}

	sort.Ints(ids)
	return ids, nil
}
