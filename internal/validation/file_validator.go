// Package validation checks dump inputs and export destinations before any
// work starts, so commands fail with one clear message.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	apperrors "spectrumloader/internal/errors"
	"spectrumloader/internal/files"
)

// FileValidator provides file checks shared by the executables
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateDumpDirectory checks that dir is a readable directory and returns
// how many dump files with extension ext it holds. An empty directory is not
// an error.
func (v *FileValidator) ValidateDumpDirectory(dir, ext string) (int, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		v.logger.Error("Dump directory does not exist",
			slog.String("directory", dir))
		return 0, apperrors.NewStorageError(fmt.Sprintf("dump directory %s does not exist", dir), err)
	}
	if err != nil {
		v.logger.Error("Failed to stat dump directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return 0, apperrors.NewStorageError(fmt.Sprintf("failed to stat directory %s", dir), err)
	}
	if !info.IsDir() {
		v.logger.Error("Dump path is not a directory",
			slog.String("path", dir))
		return 0, apperrors.NewStorageError(fmt.Sprintf("%s is not a directory", dir), nil)
	}

	found, err := files.NewDiscovery("").FindDumpFiles(dir, ext)
	if err != nil {
		return 0, apperrors.NewStorageError(fmt.Sprintf("failed to list %s", dir), err)
	}
	if len(found) == 0 {
		v.logger.Warn("No dump files found",
			slog.String("directory", dir),
			slog.String("extension", ext))
		return 0, nil
	}

	v.logger.Info("Dump directory validated",
		slog.String("directory", dir),
		slog.Int("files_found", len(found)),
		slog.String("extension", ext))
	return len(found), nil
}

// ValidateOutputDirectory ensures dir exists or can be created and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	probe, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateDumpFile checks that path names a readable regular file with
// extension ext. The extension is compared before the file system is touched.
func (v *FileValidator) ValidateDumpFile(path, ext string) error {
	if !strings.HasSuffix(path, ext) {
		v.logger.Error("File is not a dump file",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewFormatMismatchError(path, ext)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewStorageError(fmt.Sprintf("file %s does not exist", path), err)
	}
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewStorageError(fmt.Sprintf("%s is a directory, not a file", path), nil)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}
