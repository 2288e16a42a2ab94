package steamstore

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// AssetStatus is the probe result for one artwork variant.
type AssetStatus struct {
	Kind      AssetKind `json:"kind"`
	URL       string    `json:"url"`
	Available bool      `json:"available"`
}

// ProbeAssets checks every AssetKinds variant of appID concurrently. Results
// keep the AssetKinds order. Only cancellation is returned as an error.
func (c *Client) ProbeAssets(ctx context.Context, appID int64) ([]AssetStatus, error) {
	statuses := make([]AssetStatus, len(AssetKinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range AssetKinds {
		statuses[i] = AssetStatus{Kind: kind, URL: c.AssetURL(appID, kind)}
		g.Go(func() error {
			ok, err := c.Probe(gctx, statuses[i].URL)
			if err != nil {
				return err
			}
			statuses[i].Available = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statuses, nil
}
