package rescale

import (
	"encoding/json"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
)

// Listing is one page of a paginated catalog such as core types or
// analyses.
//
// Results are kept as raw JSON; the catalogs are large and their schemas
// vary between platform releases.
type Listing struct {
	// Count is the total number of items across all pages.
	Count int `json:"count"`

	// Next is the URL of the following page, nil on the last page.
	Next *string `json:"next"`

	// Previous is the URL of the preceding page, nil on the first page.
	Previous *string `json:"previous"`

	// Results holds the items of this page.
	Results []json.RawMessage `json:"results"`
}

// HasNext reports whether another page follows this one.
func (l *Listing) HasNext() bool {
	return swag.StringValue(l.Next) != ""
}

// FileRef references an uploaded file in job and analysis payloads.
type FileRef struct {
	ID string `json:"id"`
}

// FileInfo is the metadata the platform returns for an uploaded file.
type FileInfo struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	DateUploaded  strfmt.DateTime `json:"dateUploaded"`
	DecryptedSize int64           `json:"decryptedSize"`
	MD5           string          `json:"md5,omitempty"`
	PathParts     *FilePathParts  `json:"pathParts,omitempty"`
}

// FilePathParts locates a file in the platform's storage.
type FilePathParts struct {
	Container string `json:"container"`
	Path      string `json:"path"`
}

// JobInfo is the job resource as returned by jobs/{id}/.
type JobInfo struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Owner        string          `json:"owner,omitempty"`
	DateInserted strfmt.DateTime `json:"dateInserted"`
	ParamFile    *FileRef        `json:"paramFile,omitempty"`

	// JobAnalyses is left undecoded; its shape mirrors [AnalysisPayload].
	JobAnalyses []json.RawMessage `json:"jobanalyses"`
}

// JobStatus is a single entry of a job's status history.
type JobStatus struct {
	Status       string          `json:"status"`
	StatusDate   strfmt.DateTime `json:"statusDate"`
	StatusReason string          `json:"statusReason,omitempty"`
}

// JobStatuses is the status history of a job, most recent first.
type JobStatuses struct {
	Count   int         `json:"count"`
	Results []JobStatus `json:"results"`
}

// Latest returns the most recent status, or nil when there is none.
func (s *JobStatuses) Latest() *JobStatus {
	if len(s.Results) == 0 {
		return nil
	}
	return &s.Results[0]
}

// ClusterStatus describes the state of the cluster running a job.
type ClusterStatus struct {
	Status       string          `json:"status"`
	StatusDate   strfmt.DateTime `json:"statusDate"`
	StatusReason string          `json:"statusReason,omitempty"`
}

// Job status values reported by the platform.
const (
	StatusPending         = "Pending"
	StatusQueued          = "Queued"
	StatusStarted         = "Started"
	StatusValidated       = "Validated"
	StatusExecuting       = "Executing"
	StatusCompleted       = "Completed"
	StatusStopping        = "Stopping"
	StatusStopped         = "Stopped"
	StatusForceStop       = "Force Stop"
	StatusWaitingForQueue = "Waiting for Queue"
)

// IsTerminal reports whether s is a final job status.
func (s *JobStatus) IsTerminal() bool {
	switch s.Status {
	case StatusCompleted, StatusStopped, StatusForceStop:
		return true
	}
	return false
}
