// Package dispatch routes cluster and image operations to the backend that
// manages the resource: the external cluster tool or the remote API.
package dispatch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vietdv277/cirrus/pkg/provider"
	"github.com/vietdv277/cirrus/pkg/types"
)

// Dispatcher selects a cluster backend per call from an explicit subtype.
// Clusters of the CLI subtype go to the tool-backed provider, every other
// subtype is forwarded to the API provider unchanged.
type Dispatcher struct {
	cli     provider.ClusterProvider
	api     provider.ClusterProvider
	cliType types.ClusterType
	logger  *zap.Logger
}

// Option is a functional option for configuring a Dispatcher.
type Option func(*Dispatcher)

// WithCLIType sets the subtype managed through the external tool
func WithCLIType(t types.ClusterType) Option {
	return func(d *Dispatcher) {
		if t != "" {
			d.cliType = t
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a Dispatcher. Either provider may be nil, in which case calls
// routed to it fail with provider.ErrNotConfigured.
func New(cli, api provider.ClusterProvider, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cli:     cli,
		api:     api,
		cliType: types.ClusterTypeKubernetes,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CLIType returns the subtype managed through the external tool
func (d *Dispatcher) CLIType() types.ClusterType {
	return d.cliType
}

// IsCLIManaged reports whether clusters of kind use the external tool
func (d *Dispatcher) IsCLIManaged(kind types.ClusterType) bool {
	return kind == d.cliType
}

// For returns the provider handling clusters of kind
func (d *Dispatcher) For(kind types.ClusterType) (provider.ClusterProvider, error) {
	if kind == "" {
		return nil, provider.ErrUnknownClusterType
	}

	backend, name := d.api, "api"
	if d.IsCLIManaged(kind) {
		backend, name = d.cli, "cli"
	}
	if backend == nil {
		return nil, fmt.Errorf("%s backend for cluster type %s: %w", name, kind, provider.ErrNotConfigured)
	}

	d.logger.Debug("dispatching cluster operation",
		zap.String("type", string(kind)),
		zap.String("backend", name))
	return backend, nil
}

// Create creates a cluster, routed by spec.Type
func (d *Dispatcher) Create(ctx context.Context, projectID string, spec *types.ClusterCreateSpec) (*types.Cluster, error) {
	if spec == nil {
		return nil, fmt.Errorf("cluster spec required")
	}
	p, err := d.For(spec.Type)
	if err != nil {
		return nil, err
	}
	return p.Create(ctx, projectID, spec)
}

// Get returns a cluster of the given subtype
func (d *Dispatcher) Get(ctx context.Context, kind types.ClusterType, id string) (*types.Cluster, error) {
	p, err := d.For(kind)
	if err != nil {
		return nil, err
	}
	return p.Get(ctx, id)
}

// ListVMs returns the VMs of a cluster of the given subtype
func (d *Dispatcher) ListVMs(ctx context.Context, kind types.ClusterType, id string) ([]types.VM, error) {
	p, err := d.For(kind)
	if err != nil {
		return nil, err
	}
	return p.ListVMs(ctx, id)
}

// Resize changes the worker count of a cluster of the given subtype
func (d *Dispatcher) Resize(ctx context.Context, kind types.ClusterType, id string, workerCount int) (bool, error) {
	p, err := d.For(kind)
	if err != nil {
		return false, err
	}
	return p.Resize(ctx, id, workerCount)
}

// Delete removes a cluster of the given subtype
func (d *Dispatcher) Delete(ctx context.Context, kind types.ClusterType, id string) (bool, error) {
	p, err := d.For(kind)
	if err != nil {
		return false, err
	}
	return p.Delete(ctx, id)
}

// TriggerMaintenance starts maintenance on a cluster of the given subtype
func (d *Dispatcher) TriggerMaintenance(ctx context.Context, kind types.ClusterType, id string) (bool, error) {
	p, err := d.For(kind)
	if err != nil {
		return false, err
	}
	return p.TriggerMaintenance(ctx, id)
}

// ResolveType looks the cluster up through the API and returns its subtype
func (d *Dispatcher) ResolveType(ctx context.Context, id string) (types.ClusterType, error) {
	if d.api == nil {
		return "", fmt.Errorf("resolve cluster type: %w", provider.ErrNotConfigured)
	}
	cluster, err := d.api.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if cluster.GetType() == "" {
		return "", fmt.Errorf("cluster %s: %w", id, provider.ErrUnknownClusterType)
	}
	return types.ClusterType(cluster.GetType()), nil
}
