package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vietdv277/cirrus/internal/api"
	"github.com/vietdv277/cirrus/internal/aws"
	"github.com/vietdv277/cirrus/internal/cli"
	"github.com/vietdv277/cirrus/internal/config"
	"github.com/vietdv277/cirrus/internal/dispatch"
	"github.com/vietdv277/cirrus/pkg/provider"
	"github.com/vietdv277/cirrus/pkg/types"
)

// backend holds the providers built from one context
type backend struct {
	name     string
	context  *config.Context
	client   *api.Client
	clusters *dispatch.Dispatcher
	images   *dispatch.Images
}

// noAPI resolves projects when the context has no endpoint
type noAPI struct{}

func (noAPI) GetProject(ctx context.Context, id string) (*types.Project, error) {
	return nil, fmt.Errorf("project lookup: %w", provider.ErrNotConfigured)
}

func newBackend(ctx context.Context) (*backend, error) {
	cfgCtx, name, err := config.ResolveContext(settings.Context)
	if err != nil {
		return nil, err
	}

	b := &backend{name: name, context: cfgCtx}

	var (
		projects    provider.ProjectResolver = noAPI{}
		apiClusters provider.ClusterProvider
		capture     provider.ImageCaptureProvider
	)
	if cfgCtx.Endpoint != "" {
		client, err := newAPIClient(ctx, cfgCtx)
		if err != nil {
			return nil, err
		}
		b.client = client
		projects = client
		apiClusters = api.NewClusterProvider(client)
		capture = api.NewImageCaptureProvider(client)
	}

	runner := newRunner(cfgCtx)
	cliType := types.ClusterType(cfgCtx.ClusterType)
	if cliType == "" {
		cliType = types.ClusterTypeKubernetes
	}

	b.clusters = dispatch.New(
		cli.NewClusterProvider(runner, projects, cliType, logger),
		apiClusters,
		dispatch.WithCLIType(cliType),
		dispatch.WithLogger(logger),
	)
	b.images = dispatch.NewImages(cli.NewImageProvider(runner, logger), capture)

	logger.Debug("backend ready",
		zap.String("context", name),
		zap.String("endpoint", cfgCtx.Endpoint),
		zap.String("cli_type", string(cliType)))
	return b, nil
}

func newRunner(cfgCtx *config.Context) *cli.ExecRunner {
	binary := cfgCtx.CLIPath
	if settings.CLIPath != "" {
		binary = settings.CLIPath
	}

	opts := []cli.RunnerOption{
		cli.WithBinary(binary),
		cli.WithGlobalArgs(cfgCtx.CLIArgs...),
		cli.WithLogger(logger),
	}
	if recorder != nil {
		opts = append(opts, cli.WithRecorder(recorder))
	}

	markers := cfgCtx.NotFoundMarkers
	if len(settings.NotFoundMarkers) > 0 {
		markers = settings.NotFoundMarkers
	}
	if len(markers) > 0 {
		opts = append(opts, cli.WithNotFoundMarkers(markers...))
	}
	return cli.NewExecRunner(opts...)
}

// newAPIClient authenticates with, in order: CIRRUS_API_TOKEN, the context's
// OAuth client credentials, then the token stored in AWS Secrets Manager.
func newAPIClient(ctx context.Context, cfgCtx *config.Context) (*api.Client, error) {
	opts := []api.Option{api.WithLogger(logger)}

	switch {
	case settings.APIToken != "":
		opts = append(opts, api.WithToken(settings.APIToken))
	case cfgCtx.OAuth != nil:
		o := cfgCtx.OAuth
		opts = append(opts, api.WithClientCredentials(o.ClientID, o.ClientSecret, o.TokenURL, o.Scopes...))
	case cfgCtx.TokenSecret != "":
		awsClient, err := aws.NewClient(ctx, aws.WithProfile(cfgCtx.AWSProfile), aws.WithRegion(cfgCtx.AWSRegion))
		if err != nil {
			return nil, err
		}
		token, err := aws.NewTokenSource(awsClient, cfgCtx.TokenSecret).Token(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, api.WithToken(token))
	}

	return api.NewClient(ctx, cfgCtx.Endpoint, opts...)
}

// projectID returns the --project flag or the context default
func (b *backend) projectID(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if b.context.Project != "" {
		return b.context.Project, nil
	}
	return "", fmt.Errorf("no project set. Use --project or set 'project' on context %q", b.name)
}

// printOutput writes v as json or yaml, or calls table for the default format
func printOutput(v any, table func()) error {
	switch settings.Output {
	case "", "table":
		table()
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format: %s (supported: table, json, yaml)", settings.Output)
	}
}
