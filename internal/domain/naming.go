package domain

import (
	"os"
	"path/filepath"
	"strings"
)

// Directory and file names.
const (
	AppDirName       = "todo"        // Directory name under config/data homes
	ConfigFileName   = "config.toml" // Config file name
	TasksFileName    = "tasks.json"  // Default tasks file name
	LogFileName      = "todo.log"    // Activity log file name
	corruptSuffix    = ".corrupt"
	defaultLogSubdir = "logs"
)

// GlobalLogPath returns the path to the activity log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, defaultLogSubdir, LogFileName)
}

// CorruptBackupPath returns where an unreadable tasks file is preserved.
func CorruptBackupPath(tasksPath string) string {
	return tasksPath + corruptSuffix
}

// ConfigDir returns the config directory under configHome.
func ConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// ConfigPath returns the config file path under configHome.
func ConfigPath(configHome string) string {
	return filepath.Join(ConfigDir(configHome), ConfigFileName)
}

// DataDir returns the data directory under dataHome.
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// DefaultTasksPath returns the default tasks file under dataHome.
func DefaultTasksPath(dataHome string) string {
	return filepath.Join(DataDir(dataHome), TasksFileName)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
