package artifacts

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/inedo/teamcity-cli/pkg/teamcity"
)

var ErrArtifactExists = errors.New("artifact already exists")

// LocalStore keeps artifacts on the local file system under Root, laid out as
// <application>/<release>/<build>/<artifact>.
type LocalStore struct {
	Root string

	// Include limits extraction to entries matching at least one of these doublestar patterns.
	// An empty list extracts everything.
	Include []string
}

func NewLocalStore(root string, include ...string) *LocalStore {
	return &LocalStore{Root: root, Include: include}
}

var _ teamcity.ArtifactStore = (*LocalStore)(nil)

// Path returns where Store puts artifactName for app.
func (s *LocalStore) Path(app teamcity.ApplicationContext, artifactName string) string {
	parts := []string{s.Root}
	for _, segment := range []string{app.ApplicationID, app.ReleaseNumber, app.BuildNumber} {
		if segment = sanitizeSegment(segment); segment != "" {
			parts = append(parts, segment)
		}
	}
	return filepath.Join(append(parts, sanitizeSegment(artifactName))...)
}

func (s *LocalStore) Store(ctx context.Context, app teamcity.ApplicationContext, artifactName string, content io.Reader, overwrite bool) error {
	if sanitizeSegment(artifactName) == "" {
		return errors.New("artifact name must be specified")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dest := s.Path(app, artifactName)
	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("%w: %s", ErrArtifactExists, dest)
		}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	// written next to the destination and renamed so readers never see a partial artifact
	staging := filepath.Join(filepath.Dir(dest), "."+uuid.NewString()+".partial")
	if err := writeFile(staging, content, 0o644); err != nil {
		_ = os.Remove(staging)
		return err
	}
	if err := os.Rename(staging, dest); err != nil {
		_ = os.Remove(staging)
		return err
	}
	return nil
}

// ExtractArchive unpacks the zip file at archivePath into targetDir, creating it when needed.
// Entries that would land outside targetDir are rejected.
func (s *LocalStore) ExtractArchive(ctx context.Context, archivePath string, targetDir string) (err error) {
	for _, pattern := range s.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid include pattern %q", pattern)
		}
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			err = multierror.Append(err, closeErr).ErrorOrNil()
		}
	}()

	root, err := filepath.Abs(targetDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}

	for _, entry := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := strings.TrimLeft(filepath.ToSlash(entry.Name), "/")
		if name == "" || !s.included(name) {
			continue
		}

		dest := filepath.Join(root, filepath.FromSlash(name))
		if dest != root && !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q is outside the target directory", entry.Name)
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := extractEntry(entry, dest); err != nil {
			return fmt.Errorf("could not extract %s: %w", entry.Name, err)
		}
	}
	return nil
}

func (s *LocalStore) included(name string) bool {
	if len(s.Include) == 0 {
		return true
	}
	for _, pattern := range s.Include {
		if ok, _ := doublestar.Match(pattern, strings.TrimSuffix(name, "/")); ok {
			return true
		}
	}
	return false
}

func extractEntry(entry *zip.File, dest string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			err = multierror.Append(err, closeErr).ErrorOrNil()
		}
	}()

	mode := entry.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	return writeFile(dest, src, mode)
}

func writeFile(path string, content io.Reader, mode os.FileMode) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	var result *multierror.Error
	if _, err := io.Copy(file, content); err != nil {
		result = multierror.Append(result, err)
	}
	if err := file.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func sanitizeSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	segment = strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(segment)
	if segment == "." || segment == ".." {
		return ""
	}
	return segment
}
