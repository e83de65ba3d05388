package hex

import (
    "context"
    "fmt"
    "net/http"
    "time"

    "github.com/google/uuid"
)

// ProjectsService handles communication with the project related methods of
// the Hex API.
type ProjectsService service

// ProjectType distinguishes full projects from reusable components.
type ProjectType string

const (
    ProjectTypeProject   ProjectType = "PROJECT"
    ProjectTypeComponent ProjectType = "COMPONENT"
)

// AccessLevel is the permission granted by a sharing entry.
type AccessLevel string

const (
    AccessNone       AccessLevel = "NONE"
    AccessAppOnly    AccessLevel = "APP_ONLY"
    AccessCanView    AccessLevel = "CAN_VIEW"
    AccessCanEdit    AccessLevel = "CAN_EDIT"
    AccessFullAccess AccessLevel = "FULL_ACCESS"
)

// ScheduleCadence is how often a schedule fires.
type ScheduleCadence string

const (
    CadenceHourly  ScheduleCadence = "HOURLY"
    CadenceDaily   ScheduleCadence = "DAILY"
    CadenceWeekly  ScheduleCadence = "WEEKLY"
    CadenceMonthly ScheduleCadence = "MONTHLY"
    CadenceCustom  ScheduleCadence = "CUSTOM"
)

// DayOfWeek names a weekday in schedule configurations.
type DayOfWeek string

const (
    DaySunday    DayOfWeek = "SUNDAY"
    DayMonday    DayOfWeek = "MONDAY"
    DayTuesday   DayOfWeek = "TUESDAY"
    DayWednesday DayOfWeek = "WEDNESDAY"
    DayThursday  DayOfWeek = "THURSDAY"
    DayFriday    DayOfWeek = "FRIDAY"
    DaySaturday  DayOfWeek = "SATURDAY"
)

// SortBy selects the field project listings are ordered by.
type SortBy string

const (
    SortByCreatedAt       SortBy = "CREATED_AT"
    SortByLastEditedAt    SortBy = "LAST_EDITED_AT"
    SortByLastPublishedAt SortBy = "LAST_PUBLISHED_AT"
)

// SortDirection selects ascending or descending order.
type SortDirection string

const (
    SortAsc  SortDirection = "ASC"
    SortDesc SortDirection = "DESC"
)

// UserInfo identifies a workspace user.
type UserInfo struct {
    Email string `json:"email"`
}

// StatusInfo is a project status label.
type StatusInfo struct {
    Name string `json:"name"`
}

// CategoryInfo is a project category label.
type CategoryInfo struct {
    Name        string `json:"name"`
    Description string `json:"description,omitempty"`
}

// ReviewsInfo reports whether publishing the project requires review.
type ReviewsInfo struct {
    Required bool `json:"required"`
}

// AppViewsInfo aggregates view counts for the published app.
type AppViewsInfo struct {
    LastThirtyDays   int `json:"lastThirtyDays"`
    LastFourteenDays int `json:"lastFourteenDays"`
    LastSevenDays    int `json:"lastSevenDays"`
    AllTime          int `json:"allTime"`
}

// AnalyticsInfo carries usage analytics for a project.
type AnalyticsInfo struct {
    PublishedResultsUpdatedAt *time.Time   `json:"publishedResultsUpdatedAt,omitempty"`
    LastViewedAt              *time.Time   `json:"lastViewedAt,omitempty"`
    AppViews                  AppViewsInfo `json:"appViews"`
}

// HourlySchedule fires every hour at the given minute.
type HourlySchedule struct {
    Timezone string `json:"timezone"`
    Minute   int    `json:"minute"`
}

// DailySchedule fires every day at the given time.
type DailySchedule struct {
    Timezone string `json:"timezone"`
    Minute   int    `json:"minute"`
    Hour     int    `json:"hour"`
}

// WeeklySchedule fires once a week at the given day and time.
type WeeklySchedule struct {
    Timezone  string    `json:"timezone"`
    Minute    int       `json:"minute"`
    Hour      int       `json:"hour"`
    DayOfWeek DayOfWeek `json:"dayOfWeek"`
}

// MonthlySchedule fires once a month. Day is limited to 1 through 28 so the
// schedule fires in every month.
type MonthlySchedule struct {
    Timezone string `json:"timezone"`
    Minute   int    `json:"minute"`
    Hour     int    `json:"hour"`
    Day      int    `json:"day"`
}

// CustomSchedule fires on a cron expression.
type CustomSchedule struct {
    Timezone string `json:"timezone"`
    Cron     string `json:"cron"`
}

// Schedule is one scheduled run configuration of a project. The block
// matching Cadence is set; the others are nil.
type Schedule struct {
    Cadence ScheduleCadence  `json:"cadence"`
    Enabled bool             `json:"enabled"`
    Hourly  *HourlySchedule  `json:"hourly,omitempty"`
    Daily   *DailySchedule   `json:"daily,omitempty"`
    Weekly  *WeeklySchedule  `json:"weekly,omitempty"`
    Monthly *MonthlySchedule `json:"monthly,omitempty"`
    Custom  *CustomSchedule  `json:"custom,omitempty"`
}

// CollectionInfo identifies a collection by name.
type CollectionInfo struct {
    Name string `json:"name"`
}

// GroupInfo identifies a user group by name.
type GroupInfo struct {
    Name string `json:"name"`
}

// UserAccess grants a single user an access level.
type UserAccess struct {
    User   UserInfo    `json:"user"`
    Access AccessLevel `json:"access"`
}

// CollectionAccess grants a collection's members an access level.
type CollectionAccess struct {
    Collection CollectionInfo `json:"collection"`
    Access     AccessLevel    `json:"access"`
}

// GroupAccess grants a group's members an access level.
type GroupAccess struct {
    Group  GroupInfo   `json:"group"`
    Access AccessLevel `json:"access"`
}

// WorkspaceAccess is the access level granted to the whole workspace.
type WorkspaceAccess struct {
    Access AccessLevel `json:"access"`
}

// PublicWebAccess is the access level granted to the public web.
type PublicWebAccess struct {
    Access AccessLevel `json:"access"`
}

// SupportAccess is the access level granted to Hex support.
type SupportAccess struct {
    Access AccessLevel `json:"access"`
}

// SharingInfo is the full sharing configuration of a project. It is only
// populated when a request asks for it via IncludeSharing.
type SharingInfo struct {
    Users       []UserAccess       `json:"users,omitempty"`
    Collections []CollectionAccess `json:"collections,omitempty"`
    Groups      []GroupAccess      `json:"groups,omitempty"`
    Workspace   WorkspaceAccess    `json:"workspace"`
    PublicWeb   PublicWebAccess    `json:"publicWeb"`
    Support     SupportAccess      `json:"support"`
}

// Project represents a Hex project or component.
type Project struct {
    ID              uuid.UUID      `json:"id"`
    Title           string         `json:"title"`
    Description     string         `json:"description,omitempty"`
    Type            ProjectType    `json:"type"`
    Creator         UserInfo       `json:"creator"`
    Owner           UserInfo       `json:"owner"`
    Status          *StatusInfo    `json:"status,omitempty"`
    Categories      []CategoryInfo `json:"categories,omitempty"`
    Reviews         ReviewsInfo    `json:"reviews"`
    Analytics       AnalyticsInfo  `json:"analytics"`
    LastEditedAt    time.Time      `json:"lastEditedAt"`
    LastPublishedAt *time.Time     `json:"lastPublishedAt,omitempty"`
    CreatedAt       time.Time      `json:"createdAt"`
    ArchivedAt      *time.Time     `json:"archivedAt,omitempty"`
    TrashedAt       *time.Time     `json:"trashedAt,omitempty"`
    Schedules       []Schedule     `json:"schedules,omitempty"`
    Sharing         *SharingInfo   `json:"sharing,omitempty"`
}

// PaginationInfo carries opaque cursors for fetching adjacent pages.
type PaginationInfo struct {
    After  string `json:"after,omitempty"`
    Before string `json:"before,omitempty"`
}

// ProjectList is one page of projects plus pagination cursors.
type ProjectList struct {
    Values     []Project      `json:"values"`
    Pagination PaginationInfo `json:"pagination"`
}

// ProjectGetOptions specifies optional parameters to the
// ProjectsService.Get method.
type ProjectGetOptions struct {
    // IncludeSharing adds the project's sharing configuration to the
    // response.
    IncludeSharing bool `url:"includeSharing,omitempty"`
}

// ProjectListOptions specifies optional parameters to the
// ProjectsService.List method.
type ProjectListOptions struct {
    IncludeArchived   bool `url:"includeArchived,omitempty"`
    IncludeComponents bool `url:"includeComponents,omitempty"`
    IncludeTrashed    bool `url:"includeTrashed,omitempty"`
    IncludeSharing    bool `url:"includeSharing,omitempty"`

    // Statuses and Categories filter on exact label names.
    Statuses   []string `url:"statuses,omitempty"`
    Categories []string `url:"categories,omitempty"`

    CreatorEmail string `url:"creatorEmail,omitempty"`
    OwnerEmail   string `url:"ownerEmail,omitempty"`
    CollectionID string `url:"collectionId,omitempty"`

    // Limit caps the page size. The API default is 25 and the maximum 100.
    Limit int `url:"limit,omitempty"`

    // After and Before are opaque cursors taken from a previous page's
    // pagination block.
    After  string `url:"after,omitempty"`
    Before string `url:"before,omitempty"`

    SortBy        SortBy        `url:"sortBy,omitempty"`
    SortDirection SortDirection `url:"sortDirection,omitempty"`
}

// Get fetches a single project by ID.
func (s *ProjectsService) Get(ctx context.Context, projectID uuid.UUID, opts *ProjectGetOptions) (*Project, *Response, error) {
    u := fmt.Sprintf("v1/projects/%v", projectID)
    u, err := addOptions(u, opts)
    if err != nil {
        return nil, nil, err
    }

    req, err := s.client.NewRequest(http.MethodGet, u, nil)
    if err != nil {
        return nil, nil, err
    }

    project := new(Project)
    resp, err := s.client.Do(ctx, req, project)
    if err != nil {
        return nil, resp, err
    }

    return project, resp, nil
}

// List returns one page of the projects viewable in the workspace. The
// returned Response carries the After cursor for the next page; an empty
// cursor means the final page.
func (s *ProjectsService) List(ctx context.Context, opts *ProjectListOptions) (*ProjectList, *Response, error) {
    u, err := addOptions("v1/projects", opts)
    if err != nil {
        return nil, nil, err
    }

    req, err := s.client.NewRequest(http.MethodGet, u, nil)
    if err != nil {
        return nil, nil, err
    }

    list := new(ProjectList)
    resp, err := s.client.Do(ctx, req, list)
    if err != nil {
        return nil, resp, err
    }
    resp.After = list.Pagination.After

    return list, resp, nil
}

// ListAll returns every viewable project by following pagination cursors
// until the final page. Filters and sorting from opts apply to the whole
// walk; the After cursor is managed internally and pages are fetched at the
// maximum page size unless opts sets a smaller Limit.
func (s *ProjectsService) ListAll(ctx context.Context, opts *ProjectListOptions) ([]Project, error) {
    var walk ProjectListOptions
    if opts != nil {
        walk = *opts
    }
    if walk.Limit == 0 {
        walk.Limit = 100
    }

    var all []Project
    for {
        page, _, err := s.List(ctx, &walk)
        if err != nil {
            return nil, err
        }
        all = append(all, page.Values...)

        if page.Pagination.After == "" {
            return all, nil
        }
        walk.After = page.Pagination.After
    }
}

// Run triggers a run of the project's latest published version. A nil req
// runs with the API defaults.
func (s *ProjectsService) Run(ctx context.Context, projectID uuid.UUID, runReq *RunProjectRequest) (*ProjectRunResponse, *Response, error) {
    u := fmt.Sprintf("v1/projects/%v/runs", projectID)

    if runReq == nil {
        runReq = &RunProjectRequest{UseCachedSQLResults: true}
    }

    req, err := s.client.NewRequest(http.MethodPost, u, runReq)
    if err != nil {
        return nil, nil, err
    }

    run := new(ProjectRunResponse)
    resp, err := s.client.Do(ctx, req, run)
    if err != nil {
        return nil, resp, err
    }

    return run, resp, nil
}
