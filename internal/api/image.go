package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vietdv277/cirrus/pkg/types"
)

// ImageCaptureProvider implements provider.ImageCaptureProvider
type ImageCaptureProvider struct {
	client *Client
}

// NewImageCaptureProvider creates an API-backed image capture provider
func NewImageCaptureProvider(client *Client) *ImageCaptureProvider {
	return &ImageCaptureProvider{client: client}
}

// CreateFromVM captures an image from a VM
func (p *ImageCaptureProvider) CreateFromVM(ctx context.Context, vmID string, spec *types.ImageCreateFromVMSpec) (*types.Image, error) {
	var img types.Image
	path := "/vms/" + url.PathEscape(vmID) + "/create_image"
	if err := p.client.do(ctx, http.MethodPost, path, nil, spec, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// Tasks returns the tasks of an image, optionally filtered by state
func (p *ImageCaptureProvider) Tasks(ctx context.Context, imageID, state string) ([]types.Task, error) {
	var query url.Values
	if state != "" {
		query = url.Values{"state": []string{state}}
	}
	var list struct {
		Items []types.Task `json:"items"`
	}
	path := "/images/" + url.PathEscape(imageID) + "/tasks"
	if err := p.client.do(ctx, http.MethodGet, path, query, nil, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}
