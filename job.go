package rescale

import (
	"context"
	"fmt"

	oaerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/validate"
)

// Job is the unit of work submitted to the platform.
//
// A Job is built locally, then created server-side with [Job.Create],
// which assigns its id, and finally started with [Job.Submit]:
//
//	job := rescale.NewJob(rescale.DefaultHardware(), analysis)
//	if err := job.Create(ctx, client, "demo"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := job.Submit(ctx, client); err != nil {
//	    log.Fatal(err)
//	}
//
// Create may only succeed once per Job. Submit is not guarded against
// repeated calls; the platform decides how a second submit is answered.
type Job struct {
	// Hardware is shared by every analysis of the job.
	Hardware Hardware

	Analyses []*Analysis

	// ParameterFile drives a parameter sweep. It requires at least one
	// template task, on the job or on one of its analyses.
	ParameterFile *File

	// TemplateTasks are added to every analysis of the job.
	TemplateTasks []TemplateTask

	id   string
	name string
}

// JobPayload is the body posted to create a job.
type JobPayload struct {
	Name        string             `json:"name"`
	JobAnalyses []*AnalysisPayload `json:"jobanalyses"`
	ParamFile   *FileRef           `json:"paramFile,omitempty"`
}

// NewJob returns a job that has not been created yet.
func NewJob(hardware Hardware, analyses ...*Analysis) *Job {
	return &Job{Hardware: hardware, Analyses: analyses}
}

// LoadJob returns a handle to an existing job.
func LoadJob(id string) *Job {
	return &Job{id: id}
}

// ID returns the platform id, or "" before the job is created.
func (j *Job) ID() string {
	return j.id
}

// Name returns the name the job was created or renamed with.
func (j *Job) Name() string {
	return j.name
}

// IsCreated reports whether the job has a platform id.
func (j *Job) IsCreated() bool {
	return j.id != ""
}

// Create creates the job server-side under name and records its id.
//
// Pending files referenced by the job are uploaded first. Create fails
// with [ErrInvalidState] if the job already has an id, or if a parameter
// file is set without any template task.
func (j *Job) Create(ctx context.Context, t Transport, name string) error {
	if j.id != "" {
		return invalidState("job already created (id %s)", j.id)
	}
	if err := validate.RequiredString("name", "body", name); err != nil {
		return newError(CodeValidation, "invalid job", 0, oaerrors.CompositeValidationError(err))
	}
	if j.ParameterFile != nil && !j.hasTemplateTasks() {
		return invalidState("a parameter file requires at least one template task")
	}
	if err := j.Hardware.Validate(); err != nil {
		return err
	}

	payload, err := j.Payload(ctx, t, name)
	if err != nil {
		return err
	}

	resp, err := t.Post(ctx, "jobs/", payload)
	if err != nil {
		return err
	}

	var created JobInfo
	if err := resp.Decode(&created); err != nil {
		return err
	}
	if created.ID == "" {
		return newError(CodeRequest, "create response has no job id", resp.Status, nil)
	}

	j.id = created.ID
	j.name = name
	return nil
}

// Payload builds the create request body, uploading pending files.
func (j *Job) Payload(ctx context.Context, t Transport, name string) (*JobPayload, error) {
	for i, a := range j.Analyses {
		if a == nil {
			return nil, newError(CodeValidation, fmt.Sprintf("analysis %d is nil", i), 0, nil)
		}
	}

	shared, err := templateTaskPayloads(ctx, t, j.TemplateTasks)
	if err != nil {
		return nil, err
	}

	analyses := make([]*AnalysisPayload, 0, len(j.Analyses))
	for _, a := range j.Analyses {
		p, err := a.Payload(ctx, t, j.Hardware)
		if err != nil {
			return nil, err
		}
		if len(shared) > 0 {
			p.TemplateTasks = append(append([]TemplateTaskPayload{}, shared...), p.TemplateTasks...)
		}
		analyses = append(analyses, p)
	}

	payload := &JobPayload{
		Name:        name,
		JobAnalyses: analyses,
	}
	if j.ParameterFile != nil {
		ref, err := j.ParameterFile.EnsureID(ctx, t)
		if err != nil {
			return nil, err
		}
		payload.ParamFile = &ref
	}
	return payload, nil
}

func (j *Job) hasTemplateTasks() bool {
	if len(j.TemplateTasks) > 0 {
		return true
	}
	for _, a := range j.Analyses {
		if a != nil && len(a.TemplateTasks) > 0 {
			return true
		}
	}
	return false
}

// Submit starts execution of a created job.
func (j *Job) Submit(ctx context.Context, t Transport) error {
	if err := j.requireID("submitted"); err != nil {
		return err
	}
	_, err := t.Post(ctx, j.path("submit/"), nil)
	return err
}

// Stop requests that a running job be stopped.
func (j *Job) Stop(ctx context.Context, t Transport) error {
	if err := j.requireID("stopped"); err != nil {
		return err
	}
	_, err := t.Post(ctx, j.path("stop/"), nil)
	return err
}

// Rename changes the name of a created job.
func (j *Job) Rename(ctx context.Context, t Transport, name string) error {
	if err := j.requireID("renamed"); err != nil {
		return err
	}
	if err := validate.RequiredString("name", "body", name); err != nil {
		return newError(CodeValidation, "invalid job", 0, oaerrors.CompositeValidationError(err))
	}
	if _, err := t.Patch(ctx, j.path(""), map[string]string{"name": name}); err != nil {
		return err
	}
	j.name = name
	return nil
}

// Get fetches the job resource.
func (j *Job) Get(ctx context.Context, t Transport) (*JobInfo, error) {
	if err := j.requireID("fetched"); err != nil {
		return nil, err
	}
	resp, err := t.Get(ctx, j.path(""))
	if err != nil {
		return nil, err
	}
	var info JobInfo
	if err := resp.Decode(&info); err != nil {
		return nil, err
	}
	if j.name == "" {
		j.name = info.Name
	}
	return &info, nil
}

// Status fetches the job's status history and the status of its cluster.
func (j *Job) Status(ctx context.Context, t Transport) (*JobStatuses, *ClusterStatus, error) {
	if err := j.requireID("queried"); err != nil {
		return nil, nil, err
	}

	resp, err := t.Get(ctx, j.path("statuses/"))
	if err != nil {
		return nil, nil, err
	}
	var statuses JobStatuses
	if err := resp.Decode(&statuses); err != nil {
		return nil, nil, err
	}

	resp, err = t.Get(ctx, j.path("cluster_status/"))
	if err != nil {
		return nil, nil, err
	}
	var cluster ClusterStatus
	if err := resp.Decode(&cluster); err != nil {
		return nil, nil, err
	}

	return &statuses, &cluster, nil
}

func (j *Job) requireID(action string) error {
	if j.id == "" {
		return invalidState("job must be created before it can be %s", action)
	}
	return nil
}

func (j *Job) path(sub string) string {
	return "jobs/" + j.id + "/" + sub
}
