package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vietdv277/cirrus/pkg/types"
)

type projectResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Tenant struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"tenant"`
}

// GetProject returns a project and the name of its tenant
func (c *Client) GetProject(ctx context.Context, id string) (*types.Project, error) {
	var resp projectResponse
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &types.Project{
		ID:         resp.ID,
		Name:       resp.Name,
		TenantID:   resp.Tenant.ID,
		TenantName: resp.Tenant.Name,
	}, nil
}
