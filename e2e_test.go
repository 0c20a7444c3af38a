//go:build e2e

// End-to-end tests against the live Rescale platform.
//
// They need an API key and create real (unsubmitted) jobs:
//
//	RESCALE_API_KEY=... go test -tags e2e ./...
//
// RESCALE_BASE_URL selects another region, e.g. https://eu.rescale.com/api/v2/.
// Set RESCALE_SUBMIT=1 to also submit the created job; this consumes credits.
package rescale_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhimamg/rescale-go"
)

// newE2EClient returns a client for the live API, skipping the test when no
// key is configured.
func newE2EClient(t *testing.T) *rescale.Client {
	t.Helper()
	key := os.Getenv("RESCALE_API_KEY")
	if key == "" {
		t.Skip("Skipping: RESCALE_API_KEY not set")
	}
	opts := []rescale.Option{
		rescale.WithTimeout(60 * time.Second),
		rescale.WithLogger(zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)),
	}
	if base := os.Getenv("RESCALE_BASE_URL"); base != "" {
		opts = append(opts, rescale.WithBaseURL(base))
	}
	return rescale.NewClient(key, opts...)
}

// newTestContext creates a context with a reasonable timeout for E2E tests.
func newTestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)
	return ctx
}

func TestListCoreTypes_E2E(t *testing.T) {
	client := newE2EClient(t)
	ctx := newTestContext(t)

	listing, err := client.ListCoreTypes(ctx, 1)
	require.NoError(t, err, "ListCoreTypes should succeed")

	t.Logf("Found %d core types", listing.Count)
	assert.NotEmpty(t, listing.Results)
}

func TestInvalidKey_E2E(t *testing.T) {
	newE2EClient(t)
	client := rescale.NewClient("invalid-key")

	_, err := client.ListCoreTypes(newTestContext(t), 1)

	assert.ErrorIs(t, err, rescale.ErrAuthentication)
}

func TestJobLifecycle_E2E(t *testing.T) {
	client := newE2EClient(t)
	ctx := newTestContext(t)

	analysis, err := rescale.Abaqus.NewAnalysis("2023 HF4 (FlexNet Licensing)",
		"abaqus job=e2e input=e2e.inp interactive",
		rescale.NewFileFromString("e2e.inp", "*HEADING\nrescale-go e2e\n"))
	require.NoError(t, err)

	job := rescale.NewJob(rescale.DefaultHardware(), analysis)
	require.NoError(t, job.Create(ctx, client, "rescale-go e2e"))
	t.Logf("Created job %s", job.ID())

	info, err := job.Get(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, "rescale-go e2e", info.Name)

	if os.Getenv("RESCALE_SUBMIT") != "1" {
		return
	}

	require.NoError(t, job.Submit(ctx, client))
	statuses, cluster, err := job.Status(ctx, client)
	require.NoError(t, err)
	if latest := statuses.Latest(); latest != nil {
		t.Logf("Job status: %s, cluster: %s", latest.Status, cluster.Status)
	}
}
