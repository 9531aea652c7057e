// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/FelipeCJSEP/todo/internal/domain"
)

// MockClock is a test double for domain.Clock.
// Step, when set, advances the clock after every call.
type MockClock struct {
	NowTime time.Time
	Step    time.Duration
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	now := m.NowTime
	m.NowTime = m.NowTime.Add(m.Step)
	return now
}

// MockTaskStorage is a test double for domain.TaskStorage.
// Fields are ordered to minimize memory padding.
type MockTaskStorage struct {
	Tasks     []*domain.Task // Last saved (or initial) collection
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

// NewMockTaskStorage creates a MockTaskStorage holding copies of tasks.
func NewMockTaskStorage(tasks ...*domain.Task) *MockTaskStorage {
	return &MockTaskStorage{Tasks: cloneTasks(tasks)}
}

// Load returns copies of the stored tasks.
func (m *MockTaskStorage) Load() ([]*domain.Task, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return cloneTasks(m.Tasks), nil
}

// Save stores copies of tasks.
func (m *MockTaskStorage) Save(tasks []*domain.Task) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks = cloneTasks(tasks)
	return nil
}

// Get returns the stored task with id, or nil.
func (m *MockTaskStorage) Get(id int) *domain.Task {
	for _, t := range m.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func cloneTasks(tasks []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Clone())
	}
	return out
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []string
	mu      sync.Mutex
}

// NewMockLogger creates a new MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(level string, taskID int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, fmt.Sprintf("[%s] [%d] [%s] %s", level, taskID, category, msg))
}

// Info records an info entry.
func (m *MockLogger) Info(taskID int, category, msg string) {
	m.record("INFO", taskID, category, msg)
}

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID int, category, msg string) {
	m.record("DEBUG", taskID, category, msg)
}

// Warn records a warning entry.
func (m *MockLogger) Warn(taskID int, category, msg string) {
	m.record("WARN", taskID, category, msg)
}

// Error records an error entry.
func (m *MockLogger) Error(taskID int, category, msg string) {
	m.record("ERROR", taskID, category, msg)
}

// Has reports whether an entry with level contains substr.
func (m *MockLogger) Has(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := "[" + level + "]"
	for _, e := range m.Entries {
		if strings.HasPrefix(e, prefix) && strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

// MockConfigLoader is a test double for domain.ConfigLoader.
// FileConfig, when set, is what LoadFile returns instead of Config.
type MockConfigLoader struct {
	Config     *domain.Config
	FileConfig *domain.Config
	LoadErr    error
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadFile returns FileConfig, falling back to Config.
func (m *MockConfigLoader) LoadFile() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.FileConfig != nil {
		return m.FileConfig, nil
	}
	return m.Config, nil
}

var (
	_ domain.TaskStorage  = (*MockTaskStorage)(nil)
	_ domain.Logger       = (*MockLogger)(nil)
	_ domain.Clock        = (*MockClock)(nil)
	_ domain.ConfigLoader = (*MockConfigLoader)(nil)
)
