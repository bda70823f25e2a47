// Package storage persists the controller settings in LittleFS. It handles
// atomic writes, version checking, and cleanup of temporary files.
package storage

import (
	"errors"
	"os"
	"path"
	"strings"

	"github.com/clockpad/tinygo-clockpad/pkg/config"

	"tinygo.org/x/tinyfs"
	"tinygo.org/x/tinyfs/littlefs"
)

const (
	configDir    = "/config"
	settingsFile = "/config/settings.bin"
	tempSuffix   = ".tmp"
)

var (
	ErrNotFound        = errors.New("settings not found")
	ErrInvalidSettings = errors.New("invalid settings data")
	ErrFilesystem      = errors.New("filesystem error")
)

// Manager handles settings persistence using LittleFS.
type Manager struct {
	fs       *littlefs.LFS
	blockDev tinyfs.BlockDevice
	mounted  bool
}

// New initializes the storage system with the given block device.
// It mounts the filesystem and performs boot-time cleanup.
// If format is true and mount fails, it will format the filesystem.
func New(blockDev tinyfs.BlockDevice, format bool) (*Manager, error) {
	lfs := littlefs.New(blockDev)

	// Conservative LittleFS settings for on-chip flash
	lfs.Configure(&littlefs.Config{
		CacheSize:     512,
		LookaheadSize: 128,
	})

	// Try to mount existing filesystem
	err := lfs.Mount()
	if err != nil {
		if !format {
			return nil, err
		}
		// Format and try again
		if err := lfs.Format(); err != nil {
			return nil, err
		}
		if err := lfs.Mount(); err != nil {
			return nil, err
		}
	}

	m := &Manager{
		fs:       lfs,
		blockDev: blockDev,
		mounted:  true,
	}

	// Remove temp files left over from interrupted writes. Failure here is
	// not fatal; we can still operate.
	m.bootCleanup()

	return m, nil
}

// Close unmounts the filesystem.
func (m *Manager) Close() error {
	if m.mounted {
		m.mounted = false
		return m.fs.Unmount()
	}
	return nil
}

// bootCleanup removes temporary files left over from interrupted writes.
func (m *Manager) bootCleanup() error {
	entries, err := m.readDir(configDir)
	if err != nil {
		// Config dir might not exist yet
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, tempSuffix) {
			m.fs.Remove(path.Join(configDir, name))
		}
	}

	return nil
}

// readDir reads the directory entries at the given path.
func (m *Manager) readDir(dirPath string) ([]os.FileInfo, error) {
	f, err := m.fs.Open(dirPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !f.IsDir() {
		return nil, errors.New("not a directory")
	}

	return f.Readdir(-1)
}

// ensureDirs creates the config directory if it doesn't exist.
func (m *Manager) ensureDirs() error {
	if err := m.fs.Mkdir(configDir, 0755); err != nil && !isExist(err) {
		return err
	}
	return nil
}

// isExist checks if an error is "already exists".
// LittleFS errors don't always match os.IsExist, so we check the message too.
func isExist(err error) bool {
	if err == nil {
		return false
	}
	if os.IsExist(err) {
		return true
	}
	// Check for LittleFS specific error message
	return strings.Contains(err.Error(), "already exists")
}

// LoadSettings reads the stored settings. A missing file returns
// ErrNotFound; a version mismatch (firmware updated under an old settings
// file) returns defaults and config.ErrBadVersion so the caller can decide
// to rewrite.
func (m *Manager) LoadSettings(s *config.Settings) error {
	f, err := m.fs.Open(settingsFile)
	if err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "No directory entry") {
			return ErrNotFound
		}
		return err
	}
	defer f.Close()

	buf := make([]byte, config.SettingsSize)
	n, err := f.Read(buf)
	if err != nil {
		return err
	}
	if n != config.SettingsSize {
		return ErrInvalidSettings
	}

	if err := s.UnmarshalBinary(buf); err != nil {
		return err
	}
	if s.Version != config.CurrentVersion {
		*s = config.Default()
		return config.ErrBadVersion
	}
	return nil
}

// SaveSettings stores the settings atomically.
func (m *Manager) SaveSettings(s *config.Settings) error {
	if err := m.ensureDirs(); err != nil {
		return err
	}

	// Set version
	s.Version = config.CurrentVersion

	data, err := s.MarshalBinary()
	if err != nil {
		return err
	}

	return m.atomicWrite(settingsFile, data)
}

// SettingsOrDefault loads stored settings, falling back to (and persisting)
// the defaults when nothing usable is on flash. This is the boot path.
func (m *Manager) SettingsOrDefault() config.Settings {
	var s config.Settings
	err := m.LoadSettings(&s)
	if err == nil && s.Validate() == nil {
		return s
	}
	s = config.Default()
	m.SaveSettings(&s)
	return s
}

// atomicWrite writes data to a temporary file, syncs it, then renames.
// This ensures atomic updates - the original file is never in a partially written state.
func (m *Manager) atomicWrite(filepath string, data []byte) error {
	tempPath := filepath + tempSuffix

	// Remove temp file if it exists (from interrupted previous write)
	m.fs.Remove(tempPath)

	// Write to temp file
	f, err := m.fs.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		m.fs.Remove(tempPath)
		return err
	}

	// CRITICAL: Sync ensures data hits flash
	// Type assert to *littlefs.File to access Sync()
	if syncer, ok := f.(interface{ Sync() error }); ok {
		if err := syncer.Sync(); err != nil {
			f.Close()
			m.fs.Remove(tempPath)
			return err
		}
	}

	if err := f.Close(); err != nil {
		m.fs.Remove(tempPath)
		return err
	}

	// Remove existing file if present (LittleFS rename doesn't replace)
	m.fs.Remove(filepath)

	// Atomic rename
	if err := m.fs.Rename(tempPath, filepath); err != nil {
		m.fs.Remove(tempPath)
		return err
	}

	return nil
}
