// Package catalog implements the release catalog client: querying the
// hosting service for published releases of a tool and fetching release
// artifacts. The rest of the core consumes it through the Client
// interface and never talks to the network itself.
package catalog

import (
	"context"
	"io"

	"github.com/MystenLabs/suiup/pkg/types"
)

// Artifact is an open download stream for one release asset. The caller
// owns Body and must close it.
type Artifact struct {
	Name string
	Size int64
	Body io.ReadCloser
}

// Client is the release catalog contract. Implementations return
// releases newest-first as published by the hosting service; ordering
// policy beyond that is the resolver's business.
type Client interface {
	// ListReleases returns the known releases of a tool, optionally
	// filtered to one network channel.
	ListReleases(ctx context.Context, tool types.ToolID, network *types.Network) ([]types.ReleaseDescriptor, error)

	// FetchArtifact opens a download stream for the release asset
	// matching the platform tag.
	FetchArtifact(ctx context.Context, rel types.ReleaseDescriptor, tag types.PlatformTag) (*Artifact, error)
}
