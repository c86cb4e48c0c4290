package dispatch

import (
	"context"
	"fmt"

	"github.com/vietdv277/cirrus/pkg/provider"
	"github.com/vietdv277/cirrus/pkg/types"
)

// Images routes image operations. Upload, lookup, listing and deletion go
// through the external tool; capture from a VM and task listing go to the
// API.
type Images struct {
	images  provider.ImageProvider
	capture provider.ImageCaptureProvider
}

// NewImages creates an image router. capture may be nil.
func NewImages(images provider.ImageProvider, capture provider.ImageCaptureProvider) *Images {
	return &Images{images: images, capture: capture}
}

func (s *Images) Create(ctx context.Context, path string, opts *provider.ImageCreateOptions) (*types.Image, error) {
	return s.images.Create(ctx, path, opts)
}

func (s *Images) Get(ctx context.Context, id string) (*types.Image, error) {
	return s.images.Get(ctx, id)
}

func (s *Images) List(ctx context.Context) ([]types.Image, error) {
	return s.images.List(ctx)
}

func (s *Images) Delete(ctx context.Context, id string) (bool, error) {
	return s.images.Delete(ctx, id)
}

// CreateFromVM captures an image from a VM through the API
func (s *Images) CreateFromVM(ctx context.Context, vmID string, spec *types.ImageCreateFromVMSpec) (*types.Image, error) {
	if s.capture == nil {
		return nil, fmt.Errorf("create image from vm: %w", provider.ErrNotConfigured)
	}
	return s.capture.CreateFromVM(ctx, vmID, spec)
}

// Tasks lists image tasks through the API
func (s *Images) Tasks(ctx context.Context, imageID, state string) ([]types.Task, error) {
	if s.capture == nil {
		return nil, fmt.Errorf("image tasks: %w", provider.ErrNotConfigured)
	}
	return s.capture.Tasks(ctx, imageID, state)
}
