package teamcity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

type TriggerStrategy int

const (
	// TriggerBuildQueue posts a <build> document to app/rest/buildQueue.
	TriggerBuildQueue TriggerStrategy = iota
	// TriggerLegacyAction calls action.html?add2Queue and then looks for the running build.
	TriggerLegacyAction
)

func (s TriggerStrategy) String() string {
	switch s {
	case TriggerBuildQueue:
		return "build queue"
	case TriggerLegacyAction:
		return "legacy action"
	}
	return fmt.Sprintf("TriggerStrategy(%d)", int(s))
}

const (
	DefaultPollInterval = 3 * time.Second
	DefaultAppearDelay  = time.Second
)

type Result int

const (
	// ResultTriggered means the build was queued and completion was not awaited.
	ResultTriggered Result = iota
	ResultSucceeded
	ResultFailed
	ResultCancelled
)

func (r Result) String() string {
	switch r {
	case ResultTriggered:
		return "Triggered"
	case ResultSucceeded:
		return "Succeeded"
	case ResultFailed:
		return "Failed"
	case ResultCancelled:
		return "Cancelled"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Outcome is the end state of BuildQueuer.Queue. Build is the last status seen, if any.
type Outcome struct {
	Result Result
	Build  *BuildStatus
	Err    error
}

func (o *Outcome) Succeeded() bool {
	return o.Result == ResultSucceeded || o.Result == ResultTriggered
}

type Progress struct {
	Percent int
	Message string
}

// BuildQueuer triggers a build and optionally waits for it to finish.
// Configure the exported fields before calling Queue; a BuildQueuer runs a single build.
type BuildQueuer struct {
	Configuration        BuildConfigurationRef
	BranchName           string
	Strategy             TriggerStrategy
	Properties           map[string]string
	AdditionalParameters string
	WaitForCompletion    bool
	PollInterval         time.Duration
	AppearDelay          time.Duration

	// OnProgress is called on the polling goroutine after every status update.
	OnProgress func(Progress)

	client   *Client
	resolver *Resolver
	logger   Logger

	mu       sync.Mutex
	progress Progress
}

func NewBuildQueuer(client *Client, logger Logger) *BuildQueuer {
	logger = loggerOrNop(logger)
	return &BuildQueuer{
		WaitForCompletion: true,
		PollInterval:      DefaultPollInterval,
		AppearDelay:       DefaultAppearDelay,
		client:            client,
		resolver:          NewResolver(client, logger),
		logger:            logger,
	}
}

// Progress returns the latest progress snapshot. It is safe to call from any goroutine.
func (q *BuildQueuer) Progress() Progress {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.progress
}

func (q *BuildQueuer) setProgress(p Progress) {
	q.mu.Lock()
	q.progress = p
	q.mu.Unlock()
	if q.OnProgress != nil {
		q.OnProgress(p)
	}
}

// Queue runs the whole trigger and wait cycle. Errors are reported in the outcome, never returned.
func (q *BuildQueuer) Queue(ctx context.Context) *Outcome {
	buildTypeID, err := q.resolver.Resolve(ctx, q.Configuration)
	if err != nil {
		if ctx.Err() != nil {
			return q.cancelled(nil)
		}
		q.logger.Error("Could not resolve build configuration %s: %v", q.Configuration, err)
		return &Outcome{Result: ResultFailed, Err: err}
	}

	handle, build, err := q.trigger(ctx, buildTypeID)
	if err != nil {
		if errors.Is(err, ErrCancelled) || ctx.Err() != nil {
			return q.cancelled(build)
		}
		return &Outcome{Result: ResultFailed, Err: err}
	}

	if !q.WaitForCompletion {
		q.logger.Info("Build of %s was triggered; not waiting for it to complete.", buildTypeID)
		return &Outcome{Result: ResultTriggered, Build: build}
	}
	return q.poll(ctx, handle, build)
}

// trigger queues the build and returns the handle used to poll it.
func (q *BuildQueuer) trigger(ctx context.Context, buildTypeID string) (string, *BuildStatus, error) {
	if q.BranchName != "" {
		q.logger.Info("Triggering build of %s on branch %s via %s...", buildTypeID, q.BranchName, q.Strategy)
	} else {
		q.logger.Info("Triggering build of %s via %s...", buildTypeID, q.Strategy)
	}

	var queued *BuildStatus
	if q.Strategy == TriggerBuildQueue {
		var err error
		queued, err = q.client.QueueBuild(ctx, QueueRequest{
			BuildTypeID: buildTypeID,
			BranchName:  q.BranchName,
			Properties:  q.Properties,
		})
		if err != nil {
			q.logger.Error("Could not trigger build of %s: %v", buildTypeID, err)
			return "", nil, err
		}
		if handle := buildHandle(queued); handle != "" {
			q.logger.Debug("Build was queued as %s", handle)
			return handle, queued, nil
		}
	} else {
		if err := q.client.TriggerLegacy(ctx, buildTypeID, q.BranchName, q.AdditionalParameters); err != nil {
			q.logger.Error("Could not trigger build of %s: %v", buildTypeID, err)
			return "", nil, err
		}
	}

	// discovery only serves the poll loop
	if !q.WaitForCompletion {
		return "", queued, nil
	}

	q.logger.Debug("Waiting for the build to appear...")
	if err := sleep(ctx, q.AppearDelay); err != nil {
		return "", nil, err
	}
	running, err := q.client.FindRunningBuild(ctx, buildTypeID, q.BranchName)
	if err != nil {
		q.logger.Error("Could not look up the triggered build: %v", err)
		return "", nil, err
	}
	if running == nil {
		q.logger.Error("The build of %s was triggered, but no running build could be found for it.", buildTypeID)
		return "", nil, ErrBuildDidNotAppear
	}
	return buildHandle(running), running, nil
}

func (q *BuildQueuer) poll(ctx context.Context, handle string, last *BuildStatus) *Outcome {
	for {
		if ctx.Err() != nil {
			return q.cancelled(last)
		}
		build, err := q.client.GetBuildStatus(ctx, handle)
		if err != nil {
			if ctx.Err() != nil {
				return q.cancelled(last)
			}
			q.logger.Error("Could not get the status of the build: %v", err)
			return &Outcome{Result: ResultFailed, Build: last, Err: err}
		}
		last = build
		q.setProgress(Progress{
			Percent: build.PercentComplete,
			Message: fmt.Sprintf("Building %s Build #%s (%d%% Complete)", build.ProjectName, build.Number, build.PercentComplete),
		})

		if !build.IsRunning {
			return q.finished(build)
		}
		if err := sleep(ctx, q.PollInterval); err != nil {
			return q.cancelled(last)
		}
	}
}

func (q *BuildQueuer) finished(build *BuildStatus) *Outcome {
	if build.Succeeded() {
		q.logger.Info("Build #%s succeeded: %s", build.Number, build.StatusText)
		return &Outcome{Result: ResultSucceeded, Build: build}
	}
	q.logger.Error("Build #%s finished with status %s: %s", build.Number, build.Status, build.StatusText)
	return &Outcome{Result: ResultFailed, Build: build, Err: &BuildFailedError{Build: build}}
}

func (q *BuildQueuer) cancelled(last *BuildStatus) *Outcome {
	q.logger.Warn("Cancelled. A build that was already queued is not stopped on the server.")
	return &Outcome{Result: ResultCancelled, Build: last, Err: ErrCancelled}
}

// sleep waits for d, returning ErrCancelled as soon as ctx is done. ctx is checked before waiting.
func sleep(ctx context.Context, d time.Duration) error {
	if ctx.Err() != nil {
		return ErrCancelled
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ErrCancelled
	case <-timer.C:
		return nil
	}
}
