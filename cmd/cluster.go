package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vietdv277/cirrus/internal/ui"
	"github.com/vietdv277/cirrus/pkg/types"
)

var clusterCmd = &cobra.Command{
	Use:     "cluster",
	Aliases: []string{"clusters"},
	Short:   "Manage clusters",
	Long: `Manage container clusters.

Clusters of the tool-managed type (KUBERNETES unless the context sets
cluster_type) are driven through the cluster tool; all other types go to the
API. Commands that take a cluster id accept --type; without it the type is
looked up through the API.

Examples:
  crs cluster create -f cluster.yaml
  crs cluster create -n k8s-01 -t KUBERNETES -w 3 --vm-flavor small --disk-flavor ssd
  crs cluster show <id>
  crs cluster vms <id>
  crs cluster resize <id> 5
  crs cluster delete <id> --type MESOS
  crs cluster maintenance <id>`,
}

var clusterCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a cluster",
	Long: `Create a cluster from flags, a yaml/json payload file, or both.
Flags override values read from the file.

Payload file:
  name: k8s-01
  type: KUBERNETES
  vmFlavor: cluster-small
  diskFlavor: cluster-disk
  workerCount: 3
  extendedProperties:
    dns: 10.0.0.2
    gateway: 10.0.0.1
    netmask: 255.255.255.0
    master_ip: 10.0.0.10

Examples:
  crs cluster create -f cluster.yaml
  crs cluster create -f cluster.yaml -w 5
  crs cluster create -n swarm-01 -t SWARM -w 2 --property dns=10.0.0.2`,
	RunE: runClusterCreate,
}

var clusterShowCmd = &cobra.Command{
	Use:     "show <id>",
	Aliases: []string{"get"},
	Short:   "Show cluster details",
	Args:    cobra.ExactArgs(1),
	RunE:    runClusterShow,
}

var clusterVMsCmd = &cobra.Command{
	Use:   "vms <id>",
	Short: "List the VMs of a cluster",
	Args:  cobra.ExactArgs(1),
	RunE:  runClusterVMs,
}

var clusterResizeCmd = &cobra.Command{
	Use:   "resize <id> <worker-count>",
	Short: "Change the worker count of a cluster",
	Args:  cobra.ExactArgs(2),
	RunE:  runClusterResize,
}

var clusterDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a cluster",
	Args:    cobra.ExactArgs(1),
	RunE:    runClusterDelete,
}

var clusterMaintenanceCmd = &cobra.Command{
	Use:   "maintenance <id>",
	Short: "Trigger maintenance on a cluster",
	Args:  cobra.ExactArgs(1),
	RunE:  runClusterMaintenance,
}

var (
	// Flags for cluster create
	clusterFile       string
	clusterName       string
	clusterVMFlavor   string
	clusterDiskFlavor string
	clusterNetwork    string
	clusterWorkers    int
	clusterProperties map[string]string
	clusterProject    string

	// Shared by all commands taking an id
	clusterType string
)

func init() {
	rootCmd.AddCommand(clusterCmd)
	clusterCmd.AddCommand(clusterCreateCmd)
	clusterCmd.AddCommand(clusterShowCmd)
	clusterCmd.AddCommand(clusterVMsCmd)
	clusterCmd.AddCommand(clusterResizeCmd)
	clusterCmd.AddCommand(clusterDeleteCmd)
	clusterCmd.AddCommand(clusterMaintenanceCmd)

	f := clusterCreateCmd.Flags()
	f.StringVarP(&clusterFile, "file", "f", "", "Cluster payload file (yaml or json)")
	f.StringVarP(&clusterName, "name", "n", "", "Cluster name")
	f.StringVarP(&clusterType, "type", "t", "", "Cluster type: KUBERNETES, MESOS, SWARM, HARBOR")
	f.StringVar(&clusterVMFlavor, "vm-flavor", "", "VM flavor")
	f.StringVar(&clusterDiskFlavor, "disk-flavor", "", "Disk flavor")
	f.StringVar(&clusterNetwork, "network", "", "VM network id")
	f.IntVarP(&clusterWorkers, "workers", "w", 0, "Worker count")
	f.StringToStringVar(&clusterProperties, "property", nil, "Extended property key=value (repeatable)")
	f.StringVarP(&clusterProject, "project", "p", "", "Project id (defaults to the context project)")

	for _, c := range []*cobra.Command{clusterShowCmd, clusterVMsCmd, clusterResizeCmd, clusterDeleteCmd, clusterMaintenanceCmd} {
		c.Flags().StringVarP(&clusterType, "type", "t", "", "Cluster type; looked up through the API when omitted")
	}
}

func loadClusterSpec(cmd *cobra.Command) (*types.ClusterCreateSpec, error) {
	spec := &types.ClusterCreateSpec{}
	if clusterFile != "" {
		data, err := os.ReadFile(clusterFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}
		// yaml is a superset of json
		if err := yaml.Unmarshal(data, spec); err != nil {
			return nil, fmt.Errorf("failed to parse payload file: %w", err)
		}
	}

	f := cmd.Flags()
	if f.Changed("name") {
		spec.Name = clusterName
	}
	if f.Changed("type") {
		spec.Type = types.ClusterType(strings.ToUpper(clusterType))
	}
	if f.Changed("vm-flavor") {
		spec.VMFlavor = clusterVMFlavor
	}
	if f.Changed("disk-flavor") {
		spec.DiskFlavor = clusterDiskFlavor
	}
	if f.Changed("network") {
		spec.VMNetworkID = clusterNetwork
	}
	if f.Changed("workers") {
		spec.WorkerCount = clusterWorkers
	}
	if len(clusterProperties) > 0 {
		if spec.ExtendedProperties == nil {
			spec.ExtendedProperties = make(map[string]any, len(clusterProperties))
		}
		for k, v := range clusterProperties {
			spec.ExtendedProperties[k] = v
		}
	}

	if spec.Name == "" {
		return nil, fmt.Errorf("cluster name is required (--name or 'name' in the payload)")
	}
	if spec.Type == "" {
		return nil, fmt.Errorf("cluster type is required (--type or 'type' in the payload)")
	}
	return spec, nil
}

func runClusterCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	spec, err := loadClusterSpec(cmd)
	if err != nil {
		return err
	}

	b, err := newBackend(ctx)
	if err != nil {
		return err
	}
	projectID, err := b.projectID(clusterProject)
	if err != nil {
		return err
	}

	cluster, err := b.clusters.Create(ctx, projectID, spec)
	if err != nil {
		return fmt.Errorf("failed to create cluster: %w", err)
	}

	return printOutput(cluster, func() { ui.RenderCluster(os.Stdout, cluster) })
}

// clusterKind returns the --type flag, or looks the type up through the API
func clusterKind(ctx context.Context, b *backend, id string) (types.ClusterType, error) {
	if clusterType != "" {
		return types.ClusterType(strings.ToUpper(clusterType)), nil
	}
	kind, err := b.clusters.ResolveType(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to determine cluster type (pass --type): %w", err)
	}
	return kind, nil
}

func withCluster(cmd *cobra.Command, id string, fn func(ctx context.Context, b *backend, kind types.ClusterType) error) error {
	ctx := cmd.Context()
	b, err := newBackend(ctx)
	if err != nil {
		return err
	}
	kind, err := clusterKind(ctx, b, id)
	if err != nil {
		return err
	}
	return fn(ctx, b, kind)
}

func runClusterShow(cmd *cobra.Command, args []string) error {
	return withCluster(cmd, args[0], func(ctx context.Context, b *backend, kind types.ClusterType) error {
		cluster, err := b.clusters.Get(ctx, kind, args[0])
		if err != nil {
			return fmt.Errorf("failed to get cluster: %w", err)
		}
		return printOutput(cluster, func() { ui.RenderCluster(os.Stdout, cluster) })
	})
}

func runClusterVMs(cmd *cobra.Command, args []string) error {
	return withCluster(cmd, args[0], func(ctx context.Context, b *backend, kind types.ClusterType) error {
		vms, err := b.clusters.ListVMs(ctx, kind, args[0])
		if err != nil {
			return fmt.Errorf("failed to list cluster vms: %w", err)
		}
		return printOutput(vms, func() { ui.RenderVMs(os.Stdout, vms) })
	})
}

func runClusterResize(cmd *cobra.Command, args []string) error {
	count, err := strconv.Atoi(args[1])
	if err != nil || count < 0 {
		return fmt.Errorf("invalid worker count %q", args[1])
	}

	return withCluster(cmd, args[0], func(ctx context.Context, b *backend, kind types.ClusterType) error {
		if _, err := b.clusters.Resize(ctx, kind, args[0], count); err != nil {
			return fmt.Errorf("failed to resize cluster: %w", err)
		}
		fmt.Printf("Cluster %s resizing to %d workers\n", ui.IDStyle.Render(args[0]), count)
		return nil
	})
}

func runClusterDelete(cmd *cobra.Command, args []string) error {
	return withCluster(cmd, args[0], func(ctx context.Context, b *backend, kind types.ClusterType) error {
		if _, err := b.clusters.Delete(ctx, kind, args[0]); err != nil {
			return fmt.Errorf("failed to delete cluster: %w", err)
		}
		fmt.Printf("Cluster deleted: %s\n", ui.IDStyle.Render(args[0]))
		return nil
	})
}

func runClusterMaintenance(cmd *cobra.Command, args []string) error {
	return withCluster(cmd, args[0], func(ctx context.Context, b *backend, kind types.ClusterType) error {
		if _, err := b.clusters.TriggerMaintenance(ctx, kind, args[0]); err != nil {
			return fmt.Errorf("failed to trigger maintenance: %w", err)
		}
		fmt.Printf("Maintenance triggered on cluster %s\n", ui.IDStyle.Render(args[0]))
		return nil
	})
}
