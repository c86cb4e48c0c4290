package provider

import (
	"context"

	"github.com/vietdv277/cirrus/pkg/types"
)

// ClusterProvider defines the interface for cluster operations.
// Each backend (external CLI, remote API) implements it.
type ClusterProvider interface {
	// Create creates a cluster in the given project
	Create(ctx context.Context, projectID string, spec *types.ClusterCreateSpec) (*types.Cluster, error)

	// Get returns a single cluster by ID
	Get(ctx context.Context, id string) (*types.Cluster, error)

	// ListVMs returns the VMs that make up the cluster
	ListVMs(ctx context.Context, id string) ([]types.VM, error)

	// Resize changes the worker count of the cluster
	Resize(ctx context.Context, id string, workerCount int) (bool, error)

	// Delete removes the cluster
	Delete(ctx context.Context, id string) (bool, error)

	// TriggerMaintenance starts a maintenance pass on the cluster
	TriggerMaintenance(ctx context.Context, id string) (bool, error)
}

// ImageCreateOptions contains options for image creation
type ImageCreateOptions struct {
	Name        string // Generated when empty
	Replication string // Image replication type, omitted when empty
}

// ImageProvider defines the interface for image operations
type ImageProvider interface {
	// Create uploads the image at path
	Create(ctx context.Context, path string, opts *ImageCreateOptions) (*types.Image, error)

	// Get returns a single image by ID
	Get(ctx context.Context, id string) (*types.Image, error)

	// List returns all images
	List(ctx context.Context) ([]types.Image, error)

	// Delete removes an image
	Delete(ctx context.Context, id string) (bool, error)
}

// ImageCaptureProvider captures images from VMs and reports image tasks.
// Only the remote API supports it.
type ImageCaptureProvider interface {
	CreateFromVM(ctx context.Context, vmID string, spec *types.ImageCreateFromVMSpec) (*types.Image, error)
	Tasks(ctx context.Context, imageID, state string) ([]types.Task, error)
}

// ProjectResolver looks up a project together with its tenant
type ProjectResolver interface {
	GetProject(ctx context.Context, id string) (*types.Project, error)
}
