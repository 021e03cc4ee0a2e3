package teamcity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ArtifactStore receives downloaded artifacts.
type ArtifactStore interface {
	Store(ctx context.Context, app ApplicationContext, artifactName string, content io.Reader, overwrite bool) error
	ExtractArchive(ctx context.Context, archivePath string, targetDir string) error
}

// ArtifactImporter downloads a build artifact and hands it to an ArtifactStore.
type ArtifactImporter struct {
	// TempDir is where downloads are staged. Empty means os.TempDir.
	TempDir string

	client   *Client
	resolver *Resolver
	store    ArtifactStore
	logger   Logger
}

func NewArtifactImporter(client *Client, store ArtifactStore, logger Logger) *ArtifactImporter {
	logger = loggerOrNop(logger)
	return &ArtifactImporter{
		client:   client,
		resolver: NewResolver(client, logger),
		store:    store,
		logger:   logger,
	}
}

// Import downloads req.ArtifactName and stores or extracts it. It returns the concrete build number
// the artifact came from, or the requested build number when that can't be resolved.
func (i *ArtifactImporter) Import(ctx context.Context, app ApplicationContext, req ArtifactRequest) (string, error) {
	if strings.TrimSpace(req.ArtifactName) == "" {
		return "", errors.New("artifact name must be specified")
	}
	if req.ExtractToTarget && req.TargetDirectory == "" {
		return "", errors.New("a target directory must be specified when extracting an artifact")
	}

	configID, err := i.resolver.Resolve(ctx, BuildConfigurationRef{
		ID:                     req.BuildConfigurationID,
		ProjectName:            req.ProjectName,
		BuildConfigurationName: req.BuildConfigurationName,
	})
	if err != nil {
		return "", err
	}

	buildNumber := strings.TrimSpace(req.BuildNumber)
	if buildNumber == "" {
		buildNumber = LastSuccessful
	} else if token := canonicalBuildNumber(buildNumber); token != "" {
		buildNumber = token
	}

	staged, err := os.CreateTemp(i.TempDir, stagingPattern(app))
	if err != nil {
		return "", fmt.Errorf("could not create a temporary file for the download: %w", err)
	}
	stagedPath := staged.Name()
	_ = staged.Close()
	defer i.removeStaged(stagedPath)

	rel := ArtifactDownloadPath(configID, buildNumber, req.ArtifactName, req.BranchName)
	i.logger.Info("Downloading artifact %s from %s...", req.ArtifactName, i.client.URL(rel))
	if err := i.client.DownloadToFile(ctx, rel, stagedPath); err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			artifactErr := &ArtifactNotFoundError{
				ConfigurationID: configID,
				BuildNumber:     buildNumber,
				ArtifactName:    req.ArtifactName,
				BranchName:      req.BranchName,
				Err:             notFound,
			}
			i.logger.Error("%v. Hint: %s", artifactErr, artifactErr.Hint())
			return "", artifactErr
		}
		return "", err
	}

	if req.ExtractToTarget {
		i.logger.Info("Extracting %s to %s...", req.ArtifactName, req.TargetDirectory)
		if err := i.store.ExtractArchive(ctx, stagedPath, req.TargetDirectory); err != nil {
			return "", fmt.Errorf("could not extract artifact %s: %w", req.ArtifactName, err)
		}
	} else if err := i.storeFile(ctx, app, stagedPath, TrimArtifactName(req.ArtifactName)); err != nil {
		return "", fmt.Errorf("could not store artifact %s: %w", req.ArtifactName, err)
	}
	i.logger.Info("Artifact %s imported.", req.ArtifactName)

	resolved, err := i.resolver.ResolveBuildNumber(ctx, configID, buildNumber, req.BranchName)
	if err != nil {
		i.logger.Warn("Reporting the build number as %s.", buildNumber)
		return buildNumber, nil
	}
	return resolved, nil
}

func (i *ArtifactImporter) storeFile(ctx context.Context, app ApplicationContext, stagedPath string, artifactName string) error {
	file, err := os.Open(stagedPath)
	if err != nil {
		return err
	}
	var result *multierror.Error
	if err := i.store.Store(ctx, app, artifactName, file, true); err != nil {
		result = multierror.Append(result, err)
	}
	if err := file.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func (i *ArtifactImporter) removeStaged(stagedPath string) {
	i.logger.Debug("Removing temporary file %s", stagedPath)
	if err := os.Remove(stagedPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		i.logger.Warn("Could not remove temporary file %s: %v", stagedPath, err)
	}
}

// stagingPattern names the temporary download after the execution.
func stagingPattern(app ApplicationContext) string {
	id := strings.TrimSpace(app.ExecutionID)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return "teamcity-artifact-*"
	}
	return "teamcity-" + id + "-*"
}

// ArtifactDownloadPath builds the repository/download path for an artifact, relative to the api base.
func ArtifactDownloadPath(buildConfigurationID string, buildNumber string, artifactName string, branchName string) string {
	segments := strings.Split(strings.Trim(strings.TrimSpace(artifactName), "/"), "/")
	for n, segment := range segments {
		segments[n] = url.PathEscape(segment)
	}
	rel := fmt.Sprintf("repository/download/%s/%s/%s",
		url.PathEscape(buildConfigurationID),
		url.PathEscape(buildNumber),
		strings.Join(segments, "/"))
	if branchName != "" {
		rel += "?branch=" + url.QueryEscape(branchName)
	}
	return rel
}

// TrimArtifactName is the name an artifact is stored under: its file name without a .zip extension.
func TrimArtifactName(artifactName string) string {
	name := path.Base(strings.TrimSpace(artifactName))
	if strings.HasSuffix(strings.ToLower(name), ".zip") {
		name = name[:len(name)-len(".zip")]
	}
	return strings.TrimSpace(name)
}
