package rescale

import (
	"context"
	"fmt"
)

// LicenseEnvVar is the environment variable that carries an analysis
// license server.
const LicenseEnvVar = "LM_LICENSE_FILE"

// Analysis is a solver invocation attached to a job.
//
// Code and Version are platform codes; use [Solver.NewAnalysis] to build
// an Analysis from a human-readable version name. Input and template files
// that are still pending are uploaded when the payload is built.
type Analysis struct {
	Code          string
	Version       string
	Command       string
	InputFiles    []*File
	License       string
	EnvVars       map[string]string
	TemplateTasks []TemplateTask
}

// TemplateTask pairs a template file with the name the processed template
// is written to on the cluster.
type TemplateTask struct {
	ProcessedFilename string
	TemplateFile      *File
}

// AnalysisRef identifies a solver and version.
type AnalysisRef struct {
	Code    string `json:"code"`
	Version string `json:"version"`
}

// TemplateTaskPayload is the JSON form of [TemplateTask].
type TemplateTaskPayload struct {
	ProcessedFilename string  `json:"processedFilename"`
	TemplateFile      FileRef `json:"templateFile"`
}

// AnalysisPayload is one entry of a job's "jobanalyses".
type AnalysisPayload struct {
	Analysis      AnalysisRef           `json:"analysis"`
	Command       string                `json:"command"`
	Hardware      HardwarePayload       `json:"hardware"`
	InputFiles    []FileRef             `json:"inputFiles"`
	EnvVars       map[string]string     `json:"envVars"`
	TemplateTasks []TemplateTaskPayload `json:"templateTasks,omitempty"`
}

// Payload builds the request representation of a, running on hardware.
//
// Pending input and template files are uploaded first, in order. If an
// upload fails the error is returned; files uploaded before it keep
// their ids.
func (a *Analysis) Payload(ctx context.Context, t Transport, hardware Hardware) (*AnalysisPayload, error) {
	inputs := make([]FileRef, 0, len(a.InputFiles))
	for i, f := range a.InputFiles {
		if f == nil {
			return nil, newError(CodeValidation, fmt.Sprintf("input file %d is nil", i), 0, nil)
		}
		ref, err := f.EnsureID(ctx, t)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, ref)
	}

	tasks, err := templateTaskPayloads(ctx, t, a.TemplateTasks)
	if err != nil {
		return nil, err
	}

	return &AnalysisPayload{
		Analysis: AnalysisRef{
			Code:    a.Code,
			Version: a.Version,
		},
		Command:       a.Command,
		Hardware:      hardware.Payload(),
		InputFiles:    inputs,
		EnvVars:       a.envVars(),
		TemplateTasks: tasks,
	}, nil
}

func (a *Analysis) envVars() map[string]string {
	env := make(map[string]string, len(a.EnvVars)+1)
	for k, v := range a.EnvVars {
		env[k] = v
	}
	if a.License != "" {
		env[LicenseEnvVar] = a.License
	}
	return env
}

func templateTaskPayloads(ctx context.Context, t Transport, tasks []TemplateTask) ([]TemplateTaskPayload, error) {
	if len(tasks) == 0 {
		return nil, nil
	}
	out := make([]TemplateTaskPayload, 0, len(tasks))
	for _, task := range tasks {
		if task.TemplateFile == nil {
			return nil, newError(CodeValidation, fmt.Sprintf("template task %q has no template file", task.ProcessedFilename), 0, nil)
		}
		ref, err := task.TemplateFile.EnsureID(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, TemplateTaskPayload{
			ProcessedFilename: task.ProcessedFilename,
			TemplateFile:      ref,
		})
	}
	return out, nil
}

// ListAnalyses returns one page of the analysis (software) catalog.
func (c *Client) ListAnalyses(ctx context.Context, page int) (*Listing, error) {
	return c.listing(ctx, "analyses/", page)
}
