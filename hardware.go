package rescale

import (
	"context"
	"fmt"

	oaerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/validate"
)

// DefaultCoreType is the core type used by [DefaultHardware].
const DefaultCoreType = "emerald_max"

// Hardware describes the compute resources of an analysis.
//
// CoreType is a code from the platform's core type catalog (see
// [Client.ListCoreTypes]). It is not checked locally beyond being
// non-empty.
type Hardware struct {
	CoreType     string
	CoresPerSlot int
	Slots        int
}

// HardwarePayload is the JSON form of [Hardware].
type HardwarePayload struct {
	CoreType     string `json:"coreType"`
	CoresPerSlot int    `json:"coresPerSlot"`
	Slots        int    `json:"slots"`
}

// DefaultHardware returns one slot of one emerald_max core.
func DefaultHardware() Hardware {
	return Hardware{CoreType: DefaultCoreType, CoresPerSlot: 1, Slots: 1}
}

// Payload returns the request representation of h.
func (h Hardware) Payload() HardwarePayload {
	return HardwarePayload{
		CoreType:     h.CoreType,
		CoresPerSlot: h.CoresPerSlot,
		Slots:        h.Slots,
	}
}

// Validate checks that a core type is set and that both counts are positive.
func (h Hardware) Validate() error {
	var res []error

	if err := validate.RequiredString("coreType", "body", h.CoreType); err != nil {
		res = append(res, err)
	}
	if err := validate.MinimumInt("coresPerSlot", "body", int64(h.CoresPerSlot), 1, false); err != nil {
		res = append(res, err)
	}
	if err := validate.MinimumInt("slots", "body", int64(h.Slots), 1, false); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return newError(CodeValidation, "invalid hardware", 0, oaerrors.CompositeValidationError(res...))
	}
	return nil
}

// ListCoreTypes returns one page of the core type catalog.
//
// Pages are numbered from 1. The listing is returned as received; no
// filtering or caching is done.
func (c *Client) ListCoreTypes(ctx context.Context, page int) (*Listing, error) {
	return c.listing(ctx, "coretypes/", page)
}

func (c *Client) listing(ctx context.Context, path string, page int) (*Listing, error) {
	if page < 1 {
		page = 1
	}
	resp, err := c.Get(ctx, fmt.Sprintf("%s?page=%d", path, page))
	if err != nil {
		return nil, err
	}
	var l Listing
	if err := resp.Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}
