package cli

import (
	"context"

	"go.uber.org/zap"

	"github.com/vietdv277/cirrus/pkg/provider"
	"github.com/vietdv277/cirrus/pkg/types"
)

const imageNamePrefix = "image-"

// ImageProvider implements provider.ImageProvider by driving the external
// tool.
type ImageProvider struct {
	exec    Executor
	logger  *zap.Logger
	newName func(prefix string) string
}

// NewImageProvider creates a CLI-backed image provider
func NewImageProvider(exec Executor, logger *zap.Logger) *ImageProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageProvider{exec: exec, logger: logger, newName: types.RandomName}
}

func (p *ImageProvider) run(ctx context.Context, cmd Command) (string, error) {
	p.logger.Debug("running image command", zap.Stringer("command", cmd))
	return p.exec.Run(ctx, cmd.Args...)
}

// Create uploads the image and reads it back with `image show`. A random
// name is generated when none is given.
func (p *ImageProvider) Create(ctx context.Context, path string, opts *provider.ImageCreateOptions) (*types.Image, error) {
	var name, replication string
	if opts != nil {
		name, replication = opts.Name, opts.Replication
	}
	if name == "" {
		name = p.newName(imageNamePrefix)
	}

	out, err := p.run(ctx, ImageCreateCommand(path, name, replication))
	if err != nil {
		return nil, err
	}

	id, err := ParseCreatedID("image", out)
	if err != nil {
		return nil, &provider.OrphanError{Resource: "image", Err: err}
	}

	img, err := p.Get(ctx, id)
	if err != nil {
		return nil, &provider.OrphanError{Resource: "image", ID: id, Err: err}
	}
	return img, nil
}

// Get returns the image reported by `image show`
func (p *ImageProvider) Get(ctx context.Context, id string) (*types.Image, error) {
	out, err := p.run(ctx, ImageShowCommand(id))
	if err != nil {
		return nil, err
	}
	return ParseImage(out)
}

// List lists image ids and fetches each one. Images deleted between the
// listing and the fetch are skipped.
func (p *ImageProvider) List(ctx context.Context) ([]types.Image, error) {
	out, err := p.run(ctx, ImageListCommand())
	if err != nil {
		return nil, err
	}
	return fetchAll(ctx, ParseIDList(out), p.Get)
}

// Delete reports true once the delete command exits successfully
func (p *ImageProvider) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := p.run(ctx, ImageDeleteCommand(id)); err != nil {
		return false, err
	}
	return true, nil
}
