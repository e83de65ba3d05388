package hex

import (
    "context"
    "fmt"
    "net/http"
    "time"

    "github.com/google/uuid"
)

// RunsService handles communication with the project run related methods of
// the Hex API.
type RunsService service

// RunStatus is the lifecycle state of a project run. Unrecognized values
// returned by newer API versions are preserved as-is.
type RunStatus string

const (
    RunStatusPending                RunStatus = "PENDING"
    RunStatusRunning                RunStatus = "RUNNING"
    RunStatusErrored                RunStatus = "ERRORED"
    RunStatusCompleted              RunStatus = "COMPLETED"
    RunStatusKilled                 RunStatus = "KILLED"
    RunStatusUnableToAllocateKernel RunStatus = "UNABLE_TO_ALLOCATE_KERNEL"
)

// Terminal reports whether the status is an end state, meaning the run will
// not progress any further.
func (s RunStatus) Terminal() bool {
    switch s {
    case RunStatusCompleted, RunStatusErrored, RunStatusKilled, RunStatusUnableToAllocateKernel:
        return true
    }
    return false
}

// RunNotificationType selects which run outcomes trigger a notification.
type RunNotificationType string

const (
    RunNotificationSuccess RunNotificationType = "SUCCESS"
    RunNotificationFailure RunNotificationType = "FAILURE"
    RunNotificationAll     RunNotificationType = "ALL"
)

// NotificationRecipientType identifies what kind of target receives a
// notification.
type NotificationRecipientType string

const (
    RecipientUser         NotificationRecipientType = "USER"
    RecipientGroup        NotificationRecipientType = "GROUP"
    RecipientSlackChannel NotificationRecipientType = "SLACK_CHANNEL"
)

// ScreenshotFormat is the file format for success screenshots attached to
// notifications.
type ScreenshotFormat string

const (
    ScreenshotPNG ScreenshotFormat = "png"
    ScreenshotPDF ScreenshotFormat = "pdf"
)

// ProjectRunNotification configures who gets notified about a triggered
// run's outcome. At most one of SlackChannelIDs, UserIDs and GroupIDs is
// typically set per entry.
type ProjectRunNotification struct {
    Type                     RunNotificationType `json:"type"`
    IncludeSuccessScreenshot bool                `json:"includeSuccessScreenshot"`
    ScreenshotFormat         ScreenshotFormat    `json:"screenshotFormat,omitempty"`
    SlackChannelIDs          []string            `json:"slackChannelIds,omitempty"`
    UserIDs                  []string            `json:"userIds,omitempty"`
    GroupIDs                 []string            `json:"groupIds,omitempty"`
    Subject                  string              `json:"subject,omitempty"`
    Body                     string              `json:"body,omitempty"`
}

// NotificationRecipient identifies one resolved notification target.
type NotificationRecipient struct {
    ID        string `json:"id"`
    Name      string `json:"name"`
    IsPrivate *bool  `json:"isPrivate,omitempty"`
}

// ProjectRunNotificationRecipient is a notification entry as echoed back by
// the API, with the target resolved to a concrete recipient.
type ProjectRunNotificationRecipient struct {
    Type                     RunNotificationType       `json:"type"`
    Subject                  string                    `json:"subject,omitempty"`
    Body                     string                    `json:"body,omitempty"`
    RecipientType            NotificationRecipientType `json:"recipientType"`
    IncludeSuccessScreenshot bool                      `json:"includeSuccessScreenshot"`
    ScreenshotFormat         []ScreenshotFormat        `json:"screenshotFormat,omitempty"`
    Recipient                NotificationRecipient     `json:"recipient"`
}

// RunProjectRequest is the body for ProjectsService.Run. The boolean fields
// are always sent, so a zero value turns the corresponding behavior off.
type RunProjectRequest struct {
    // InputParams overrides input cell values for this run, keyed by
    // parameter name.
    InputParams map[string]any `json:"inputParams,omitempty"`

    // DryRun compiles the project without executing any cells.
    DryRun bool `json:"dryRun"`

    // UpdateCache refreshes cached app state when the run completes.
    //
    // Deprecated: use UpdatePublishedResults instead.
    UpdateCache *bool `json:"updateCache,omitempty"`

    Notifications []ProjectRunNotification `json:"notifications,omitempty"`

    // UpdatePublishedResults refreshes the published app's results when the
    // run completes successfully.
    UpdatePublishedResults bool `json:"updatePublishedResults"`

    // UseCachedSQLResults reuses cached SQL results instead of re-executing
    // queries. The API defaults this to true when a run is triggered without
    // a request body.
    UseCachedSQLResults bool `json:"useCachedSqlResults"`

    // ViewID runs the project with the input state of a saved view.
    ViewID string `json:"viewId,omitempty"`
}

// ProjectRunResponse is returned when a run has been triggered.
type ProjectRunResponse struct {
    ProjectID      uuid.UUID                         `json:"projectId"`
    RunID          uuid.UUID                         `json:"runId"`
    RunURL         string                            `json:"runUrl"`
    RunStatusURL   string                            `json:"runStatusUrl"`
    ProjectVersion int                               `json:"projectVersion"`
    Notifications  []ProjectRunNotificationRecipient `json:"notifications,omitempty"`
    TraceID        string                            `json:"traceId,omitempty"`
}

// ProjectStatusResponse describes one run of a project.
type ProjectStatusResponse struct {
    ProjectID      uuid.UUID                         `json:"projectId"`
    ProjectVersion int                               `json:"projectVersion"`
    RunID          uuid.UUID                         `json:"runId"`
    RunURL         string                            `json:"runUrl"`
    Status         RunStatus                         `json:"status"`
    StartTime      *time.Time                        `json:"startTime,omitempty"`
    EndTime        *time.Time                        `json:"endTime,omitempty"`
    ElapsedTime    *float64                          `json:"elapsedTime,omitempty"`
    Notifications  []ProjectRunNotificationRecipient `json:"notifications,omitempty"`
    TraceID        string                            `json:"traceId,omitempty"`
}

// ProjectRunsResponse is one page of a project's run history.
type ProjectRunsResponse struct {
    Runs         []ProjectStatusResponse `json:"runs"`
    NextPage     string                  `json:"nextPage,omitempty"`
    PreviousPage string                  `json:"previousPage,omitempty"`
    TraceID      string                  `json:"traceId,omitempty"`
}

// RunListOptions specifies optional parameters to the RunsService.List
// method.
type RunListOptions struct {
    // Limit caps the number of runs returned. The API default is 10.
    Limit int `url:"limit,omitempty"`

    // Offset skips the given number of most recent runs.
    Offset int `url:"offset,omitempty"`

    // StatusFilter restricts results to runs currently in this status.
    StatusFilter RunStatus `url:"statusFilter,omitempty"`
}

// GetStatus fetches the current status of a single run.
func (s *RunsService) GetStatus(ctx context.Context, projectID, runID uuid.UUID) (*ProjectStatusResponse, *Response, error) {
    u := fmt.Sprintf("v1/projects/%v/runs/%v", projectID, runID)

    req, err := s.client.NewRequest(http.MethodGet, u, nil)
    if err != nil {
        return nil, nil, err
    }

    status := new(ProjectStatusResponse)
    resp, err := s.client.Do(ctx, req, status)
    if err != nil {
        return nil, resp, err
    }

    return status, resp, nil
}

// List returns the API-triggered runs of a project, most recent first.
func (s *RunsService) List(ctx context.Context, projectID uuid.UUID, opts *RunListOptions) (*ProjectRunsResponse, *Response, error) {
    u := fmt.Sprintf("v1/projects/%v/runs", projectID)
    u, err := addOptions(u, opts)
    if err != nil {
        return nil, nil, err
    }

    req, err := s.client.NewRequest(http.MethodGet, u, nil)
    if err != nil {
        return nil, nil, err
    }

    runs := new(ProjectRunsResponse)
    resp, err := s.client.Do(ctx, req, runs)
    if err != nil {
        return nil, resp, err
    }

    return runs, resp, nil
}

// Cancel kills a run that is still in progress.
func (s *RunsService) Cancel(ctx context.Context, projectID, runID uuid.UUID) (*Response, error) {
    u := fmt.Sprintf("v1/projects/%v/runs/%v", projectID, runID)

    req, err := s.client.NewRequest(http.MethodDelete, u, nil)
    if err != nil {
        return nil, err
    }

    return s.client.Do(ctx, req, nil)
}

// WaitOptions configures RunsService.WaitForCompletion.
type WaitOptions struct {
    // PollInterval is the delay between status checks. Zero means the
    // default of 5 seconds.
    PollInterval time.Duration
}

// WaitForCompletion polls the run's status until it reaches a terminal
// state, then returns the final status response. The status is checked
// once before the first sleep, so a run that is already finished costs a
// single API call.
//
// Canceling ctx stops the polling loop only; the run itself keeps going on
// the server. The last observed status is returned alongside ctx's error.
func (s *RunsService) WaitForCompletion(ctx context.Context, projectID, runID uuid.UUID, opts *WaitOptions) (*ProjectStatusResponse, error) {
    interval := 5 * time.Second
    if opts != nil && opts.PollInterval > 0 {
        interval = opts.PollInterval
    }

    for {
        status, _, err := s.GetStatus(ctx, projectID, runID)
        if err != nil {
            return nil, err
        }
        if status.Status.Terminal() {
            return status, nil
        }

        select {
        case <-ctx.Done():
            return status, ctx.Err()
        case <-time.After(interval):
        }
    }
}
