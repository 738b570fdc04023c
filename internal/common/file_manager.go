package common

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	// DirPermissions is used for every directory the application creates
	DirPermissions fs.FileMode = 0755
	// FilePermissions is used for every artifact the application writes
	FilePermissions fs.FileMode = 0644
)

// FileWriteOptions configures file writing behavior
type FileWriteOptions struct {
	CreateDirs  bool        // Whether to create parent directories
	Permissions fs.FileMode // File permissions
}

// DefaultFileWriteOptions returns default file writing options
func DefaultFileWriteOptions() FileWriteOptions {
	return FileWriteOptions{
		CreateDirs:  false,
		Permissions: FilePermissions,
	}
}

// FileReadOptions configures file reading behavior
type FileReadOptions struct {
	MaxSize int64 // Maximum file size in bytes, 0 for unlimited
}

// DefaultFileReadOptions returns default file reading options
func DefaultFileReadOptions() FileReadOptions {
	return FileReadOptions{MaxSize: 0}
}

// FileManager provides file operations with standardized error handling and logging
type FileManager struct {
	logger zerolog.Logger
}

// NewFileManager creates a new FileManager instance
func NewFileManager(logger zerolog.Logger) *FileManager {
	return &FileManager{
		logger: logger.With().Str("component", "FileManager").Logger(),
	}
}

// FileExists checks if a file or directory exists
func (fm *FileManager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// EnsureDirectory creates a directory and its parents if they don't exist
func (fm *FileManager) EnsureDirectory(path string, perm fs.FileMode) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return NewValidationError("path", path, "exists but is not a directory")
		}
		return nil
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return WrapError(err, "failed to create directory: "+path)
	}

	fm.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// CreateDirectory creates exactly one directory level. It fails when the
// path already exists, which callers use to guarantee a fresh, empty directory.
func (fm *FileManager) CreateDirectory(path string, perm fs.FileMode) error {
	if err := os.Mkdir(path, perm); err != nil {
		if os.IsExist(err) {
			return WrapError(ErrSessionExists, path)
		}
		return WrapError(err, "failed to create directory: "+path)
	}

	fm.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// WriteFile writes data to a file with the given options
func (fm *FileManager) WriteFile(path string, data []byte, opts FileWriteOptions) error {
	if opts.CreateDirs {
		if err := fm.EnsureDirectory(filepath.Dir(path), DirPermissions); err != nil {
			return WrapError(err, "failed to create parent directories for: "+path)
		}
	}
	if opts.Permissions == 0 {
		opts.Permissions = FilePermissions
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, opts.Permissions)
	if err != nil {
		return WrapError(err, "failed to write file: "+path)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return WrapError(err, "failed to write file: "+path)
	}
	if err := file.Close(); err != nil {
		return WrapError(err, "failed to close file: "+path)
	}

	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File written successfully")
	return nil
}

// ReadFile reads a regular file, refusing files larger than opts.MaxSize.
func (fm *FileManager) ReadFile(path string, opts FileReadOptions) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, WrapError(err, "failed to open file: "+path)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, WrapError(err, "failed to stat file: "+path)
	}
	if info.IsDir() {
		return nil, NewValidationError("path", path, "is a directory")
	}
	if opts.MaxSize > 0 && info.Size() > opts.MaxSize {
		return nil, NewValidationError("size", info.Size(), fmt.Sprintf("file exceeds maximum size of %d bytes", opts.MaxSize))
	}

	var reader io.Reader = file
	if opts.MaxSize > 0 {
		reader = io.LimitReader(file, opts.MaxSize)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, WrapError(err, "failed to read file: "+path)
	}

	fm.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("File read successfully")
	return data, nil
}
