package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vietdv277/cirrus/pkg/provider"
	"github.com/vietdv277/cirrus/pkg/types"
)

// ClusterProvider implements provider.ClusterProvider by driving the
// external cluster tool.
type ClusterProvider struct {
	exec     Executor
	projects provider.ProjectResolver
	cliType  types.ClusterType
	logger   *zap.Logger
}

// NewClusterProvider creates a CLI-backed cluster provider. cliType is the
// subtype whose extra creation flags (etcd, master ip, container network)
// are rendered.
func NewClusterProvider(exec Executor, projects provider.ProjectResolver, cliType types.ClusterType, logger *zap.Logger) *ClusterProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClusterProvider{exec: exec, projects: projects, cliType: cliType, logger: logger}
}

func (p *ClusterProvider) run(ctx context.Context, cmd Command) (string, error) {
	p.logger.Debug("running cluster command", zap.Stringer("command", cmd))
	return p.exec.Run(ctx, cmd.Args...)
}

// Create creates the cluster and reads it back with `cluster show`.
// If the command succeeds but the cluster cannot be read back, the returned
// error is a *provider.OrphanError.
func (p *ClusterProvider) Create(ctx context.Context, projectID string, spec *types.ClusterCreateSpec) (*types.Cluster, error) {
	if spec == nil {
		return nil, fmt.Errorf("cluster spec required")
	}

	project, err := p.projects.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out, err := p.run(ctx, ClusterCreateCommand(project.TenantName, project.Name, spec, p.cliType))
	if err != nil {
		return nil, err
	}

	id, err := ParseCreatedID("cluster", out)
	if err != nil {
		return nil, &provider.OrphanError{Resource: "cluster", Err: err}
	}

	cluster, err := p.Get(ctx, id)
	if err != nil {
		return nil, &provider.OrphanError{Resource: "cluster", ID: id, Err: err}
	}
	return cluster, nil
}

// Get returns the cluster reported by `cluster show`
func (p *ClusterProvider) Get(ctx context.Context, id string) (*types.Cluster, error) {
	out, err := p.run(ctx, ClusterShowCommand(id))
	if err != nil {
		return nil, err
	}
	return ParseCluster(out)
}

// ListVMs returns the VMs reported by `cluster list_vms`, decoded straight
// from the listing. There is no per-VM fetch, so no entry is dropped.
func (p *ClusterProvider) ListVMs(ctx context.Context, id string) ([]types.VM, error) {
	out, err := p.run(ctx, ClusterListVMsCommand(id))
	if err != nil {
		return nil, err
	}
	return ParseVMList(out), nil
}

// Resize reports true once the resize command exits successfully
func (p *ClusterProvider) Resize(ctx context.Context, id string, workerCount int) (bool, error) {
	if _, err := p.run(ctx, ClusterResizeCommand(id, workerCount)); err != nil {
		return false, err
	}
	return true, nil
}

// Delete reports true once the delete command exits successfully
func (p *ClusterProvider) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := p.run(ctx, ClusterDeleteCommand(id)); err != nil {
		return false, err
	}
	return true, nil
}

// TriggerMaintenance reports true once the command exits successfully
func (p *ClusterProvider) TriggerMaintenance(ctx context.Context, id string) (bool, error) {
	if _, err := p.run(ctx, ClusterMaintenanceCommand(id)); err != nil {
		return false, err
	}
	return true, nil
}
