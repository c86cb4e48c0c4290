package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vietdv277/cirrus/pkg/types"
)

// ClusterProvider implements provider.ClusterProvider over the REST API
type ClusterProvider struct {
	client *Client
}

// NewClusterProvider creates an API-backed cluster provider
func NewClusterProvider(client *Client) *ClusterProvider {
	return &ClusterProvider{client: client}
}

func clusterPath(id string, rest ...string) string {
	p := "/clusters/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

// Create creates a cluster in the given project
func (p *ClusterProvider) Create(ctx context.Context, projectID string, spec *types.ClusterCreateSpec) (*types.Cluster, error) {
	var cluster types.Cluster
	path := "/projects/" + url.PathEscape(projectID) + "/clusters"
	if err := p.client.do(ctx, http.MethodPost, path, nil, spec, &cluster); err != nil {
		return nil, err
	}
	return &cluster, nil
}

// Get returns a single cluster by ID
func (p *ClusterProvider) Get(ctx context.Context, id string) (*types.Cluster, error) {
	var cluster types.Cluster
	if err := p.client.do(ctx, http.MethodGet, clusterPath(id), nil, nil, &cluster); err != nil {
		return nil, err
	}
	return &cluster, nil
}

// ListVMs returns the VMs of a cluster
func (p *ClusterProvider) ListVMs(ctx context.Context, id string) ([]types.VM, error) {
	var list struct {
		Items []types.VM `json:"items"`
	}
	if err := p.client.do(ctx, http.MethodGet, clusterPath(id, "vms"), nil, nil, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// Resize changes the worker count of a cluster
func (p *ClusterProvider) Resize(ctx context.Context, id string, workerCount int) (bool, error) {
	body := map[string]int{"newWorkerCount": workerCount}
	if err := p.client.do(ctx, http.MethodPost, clusterPath(id, "resize"), nil, body, nil); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a cluster
func (p *ClusterProvider) Delete(ctx context.Context, id string) (bool, error) {
	if err := p.client.do(ctx, http.MethodDelete, clusterPath(id), nil, nil, nil); err != nil {
		return false, err
	}
	return true, nil
}

// TriggerMaintenance starts a maintenance pass on a cluster
func (p *ClusterProvider) TriggerMaintenance(ctx context.Context, id string) (bool, error) {
	if err := p.client.do(ctx, http.MethodPost, clusterPath(id, "trigger_maintenance"), nil, nil, nil); err != nil {
		return false, err
	}
	return true, nil
}
