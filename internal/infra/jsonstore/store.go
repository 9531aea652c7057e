// Package jsonstore provides a JSON file-based implementation of TaskStorage.
package jsonstore

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/FelipeCJSEP/todo/internal/domain"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var schemaJSON string

const schemaURL = "tasks.schema.json"

// compileSchema compiles the embedded tasks file schema once.
var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// record is the JSON representation of a task.
// Field order is the key order written to the file.
//
//nolint:govet // Key order preferred over padding
type record struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Responsible string  `json:"responsible"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	ClosedAt    *string `json:"closed_at"`
}

// Store implements domain.TaskStorage using a JSON file.
type Store struct {
	logger domain.Logger
	path   string
}

// Ensure Store implements TaskStorage.
var _ domain.TaskStorage = (*Store)(nil)

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string, logger domain.Logger) *Store {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every task from the file.
// A missing file yields no tasks. A file that is not a valid tasks document
// also yields no tasks; its content is preserved next to it for inspection.
func (s *Store) Load() ([]*domain.Task, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*domain.Task{}, nil
		}
		return nil, fmt.Errorf("read tasks file: %w: %w", domain.ErrIOFailure, err)
	}

	tasks, err := decode(content)
	if err != nil {
		s.quarantine(content, err)
		return []*domain.Task{}, nil
	}
	return tasks, nil
}

// Save replaces the file content with tasks.
func (s *Store) Save(tasks []*domain.Task) error {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, toRecord(t))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	if err := s.write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIOFailure, err)
	}
	return nil
}

func (s *Store) write(content []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// quarantine logs why the file was rejected and keeps a copy of it.
func (s *Store) quarantine(content []byte, cause error) {
	s.logger.Warn(0, "storage", fmt.Sprintf("ignoring unreadable tasks file %s: %v", s.path, cause))
	if len(bytes.TrimSpace(content)) == 0 {
		return
	}
	backup := domain.CorruptBackupPath(s.path)
	if err := os.WriteFile(backup, content, 0o600); err != nil {
		s.logger.Error(0, "storage", fmt.Sprintf("backup unreadable tasks file: %v", err))
		return
	}
	s.logger.Info(0, "storage", "unreadable tasks file copied to "+backup)
}

// decode validates and converts the file content.
func decode(content []byte) ([]*domain.Task, error) {
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse tasks file: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate tasks file: %w", err)
	}

	var records []record
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("parse tasks file: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(records))
	seen := make(map[int]bool, len(records))
	for i, r := range records {
		if seen[r.ID] {
			return nil, fmt.Errorf("task %d: duplicate id %d", i, r.ID)
		}
		seen[r.ID] = true

		task, err := fromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func toRecord(t *domain.Task) record {
	r := record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Responsible: t.Responsible,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
	}
	if t.ClosedAt != nil {
		closed := formatTime(*t.ClosedAt)
		r.ClosedAt = &closed
	}
	return r
}

func fromRecord(r record) (*domain.Task, error) {
	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	priority, err := domain.ParsePriority(r.Priority)
	if err != nil {
		return nil, err
	}
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}

	task := &domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Responsible: r.Responsible,
		Status:      status,
		Priority:    priority,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}
	if r.ClosedAt != nil {
		closed, err := parseTime(*r.ClosedAt)
		if err != nil {
			return nil, fmt.Errorf("closed_at: %w", err)
		}
		task.ClosedAt = &closed
	}
	return task, nil
}
