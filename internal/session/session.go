// Package session persists comparison runs as JSON documents so they can be
// reloaded and aggregated into historical statistics.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "github.com/agbru/rootcalc/internal/errors"
	"github.com/agbru/rootcalc/internal/orchestration"
	"github.com/agbru/rootcalc/internal/rootfind"
)

// Metadata identifies the document format.
const (
	FormatVersion = "1.0"
	Kind          = "rootcalc_comparison"
	fileExt       = ".json"
)

// ErrNotFound is returned by Load for an unknown session name.
var ErrNotFound = errors.New("session not found")

// Parameters are the inputs of a saved run.
type Parameters struct {
	CardsValue      float64 `json:"cards"`
	Target          float64 `json:"target"`
	Method          string  `json:"method"`
	Tolerance       float64 `json:"tolerance"`
	MaxIterations   int     `json:"max_iterations"`
	DivergenceBound float64 `json:"divergence_bound"`
	LowerBound      float64 `json:"a"`
	UpperBound      float64 `json:"b"`
	InitialGuess    float64 `json:"x0"`
}

// Entry is one method's outcome within a session.
type Entry struct {
	Name       string               `json:"name"`
	Result     rootfind.SolveResult `json:"result"`
	DurationMS float64              `json:"duration_ms"`
}

// Metadata describes the document.
type Metadata struct {
	Version string `json:"version"`
	Kind    string `json:"kind"`
}

// Session is the persisted form of a comparison run.
type Session struct {
	Timestamp  time.Time  `json:"timestamp"`
	Parameters Parameters `json:"parameters"`
	Results    []Entry    `json:"results"`
	Metadata   Metadata   `json:"metadata"`
}

// New builds a session from a finished comparison.
func New(params Parameters, results []orchestration.RunResult) Session {
	entries := make([]Entry, len(results))
	for i, r := range results {
		entries[i] = Entry{
			Name:       r.Name,
			Result:     r.Result,
			DurationMS: float64(r.Duration) / float64(time.Millisecond),
		}
	}
	return Session{
		Timestamp:  time.Now(),
		Parameters: params,
		Results:    entries,
		Metadata:   Metadata{Version: FormatVersion, Kind: Kind},
	}
}

// Store keeps sessions as <dir>/<name>.json.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

// DefaultName returns the name used when Save is given an empty one.
func DefaultName(t time.Time) string {
	return "session_" + t.Format("20060102_150405")
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return apperrors.ValidationError{Field: "session", Message: fmt.Sprintf("invalid session name %q", name)}
	}
	return nil
}

// Save writes sess under name and returns the name actually used.
func (s *Store) Save(name string, sess Session) (string, error) {
	if name == "" {
		name = DefaultName(sess.Timestamp)
	}
	name = strings.TrimSuffix(name, fileExt)
	if err := validateName(name); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write session: %w", err)
	}
	return name, nil
}

// Load reads the session stored under name.
func (s *Store) Load(name string) (Session, error) {
	name = strings.TrimSuffix(name, fileExt)
	if err := validateName(name); err != nil {
		return Session{}, err
	}
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to decode session %q: %w", name, err)
	}
	return sess, nil
}

// List returns the stored session names in ascending order. A missing
// directory yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}
