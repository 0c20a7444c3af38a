// Package rescale provides a Go client for the Rescale HPC job-submission
// REST API.
//
// A job is assembled from [Hardware], input [File]s and one or more
// [Analysis] values, created server-side and then submitted for execution.
// Every operation is a single request/response exchange; the only local
// state is the payload being built and the ids the platform assigns.
//
// # Installation
//
//	go get github.com/abhimamg/rescale-go
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//	    "os"
//
//	    "github.com/abhimamg/rescale-go"
//	)
//
//	func main() {
//	    ctx := context.Background()
//	    client := rescale.NewClient(os.Getenv("RESCALE_API_KEY"))
//
//	    analysis, err := rescale.Abaqus.NewAnalysis(
//	        "2023 HF4 (FlexNet Licensing)",
//	        "abaqus job=model input=model.inp",
//	        rescale.NewFile("model.inp"),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    hw := rescale.Hardware{CoreType: "emerald_max", CoresPerSlot: 4, Slots: 1}
//	    job := rescale.NewJob(hw, analysis)
//	    if err := job.Create(ctx, client, "model run"); err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := job.Submit(ctx, client); err != nil {
//	        log.Fatal(err)
//	    }
//	    log.Printf("submitted job %s", job.ID())
//	}
//
// # Client Configuration
//
// The client is configured with functional options:
//
//	client := rescale.NewClient(apiKey,
//	    rescale.WithBaseURL("https://eu.rescale.com/api/v2/"),
//	    rescale.WithTimeout(2*time.Minute),
//	    rescale.WithLogger(zerolog.New(os.Stderr).Level(zerolog.DebugLevel)),
//	)
//
// The client never reads the environment. The config subpackage loads the
// API key and base URL from a YAML file and RESCALE_* variables.
//
// # Error Handling
//
// All errors are *[Error] values classified by code:
//
//	err := job.Submit(ctx, client)
//	switch {
//	case errors.Is(err, rescale.ErrAuthentication):
//	    // missing or rejected API key (HTTP 401)
//	case errors.Is(err, rescale.ErrInvalidState):
//	    // e.g. submit before create
//	case errors.Is(err, rescale.ErrRequest):
//	    // any other status >= 300; see Error.Status and Error.Body
//	case errors.Is(err, rescale.ErrTransport):
//	    // network failure or timeout
//	}
//
// Nothing is retried. A failed operation leaves the entity unchanged.
//
// # Thread Safety
//
// The [Client] is safe for concurrent use by multiple goroutines.
// [File] and [Job] values are not; each should be driven by one caller.
package rescale
