package types

import "github.com/spf13/cast"

// ClusterType is the subtype discriminator of a cluster
type ClusterType string

const (
	ClusterTypeKubernetes ClusterType = "KUBERNETES"
	ClusterTypeMesos      ClusterType = "MESOS"
	ClusterTypeSwarm      ClusterType = "SWARM"
	ClusterTypeHarbor     ClusterType = "HARBOR"
)

// Extended property keys understood by the cluster tooling
const (
	PropertyDNS              = "dns"
	PropertyGateway          = "gateway"
	PropertyNetmask          = "netmask"
	PropertyEtcdIP1          = "etcd_ip1"
	PropertyEtcdIP2          = "etcd_ip2"
	PropertyEtcdIP3          = "etcd_ip3"
	PropertyMasterIP         = "master_ip"
	PropertyContainerNetwork = "container_network"
)

// Cluster represents a compute cluster.
// Optional attributes are nil when the backend did not report them.
type Cluster struct {
	ID                 *string           `json:"id,omitempty" yaml:"id,omitempty"`
	Name               *string           `json:"name,omitempty" yaml:"name,omitempty"`
	State              *string           `json:"state,omitempty" yaml:"state,omitempty"`
	Type               *string           `json:"type,omitempty" yaml:"type,omitempty"`
	WorkerCount        *int              `json:"workerCount,omitempty" yaml:"workerCount,omitempty"`
	ExtendedProperties map[string]string `json:"extendedProperties,omitempty" yaml:"extendedProperties,omitempty"`
}

func (c *Cluster) GetID() string {
	if c == nil {
		return ""
	}
	return str(c.ID)
}

func (c *Cluster) GetName() string {
	if c == nil {
		return ""
	}
	return str(c.Name)
}

func (c *Cluster) GetState() string {
	if c == nil {
		return ""
	}
	return str(c.State)
}

func (c *Cluster) GetType() string {
	if c == nil {
		return ""
	}
	return str(c.Type)
}

func (c *Cluster) GetWorkerCount() int {
	if c == nil || c.WorkerCount == nil {
		return 0
	}
	return *c.WorkerCount
}

// GetProperty returns an extended property value by key
func (c *Cluster) GetProperty(key string) string {
	if c == nil || c.ExtendedProperties == nil {
		return ""
	}
	return c.ExtendedProperties[key]
}

// ClusterCreateSpec is the payload of a cluster creation request.
// ExtendedProperties is loosely typed: values come from flags, yaml or json
// payload files and are coerced to strings when rendered.
type ClusterCreateSpec struct {
	Name               string         `json:"name" yaml:"name"`
	Type               ClusterType    `json:"type" yaml:"type"`
	VMFlavor           string         `json:"vmFlavor,omitempty" yaml:"vmFlavor,omitempty"`
	DiskFlavor         string         `json:"diskFlavor,omitempty" yaml:"diskFlavor,omitempty"`
	VMNetworkID        string         `json:"vmNetworkId,omitempty" yaml:"vmNetworkId,omitempty"`
	WorkerCount        int            `json:"workerCount" yaml:"workerCount"`
	ExtendedProperties map[string]any `json:"extendedProperties,omitempty" yaml:"extendedProperties,omitempty"`
}

// Property returns the string form of an extended property and whether it
// is set to a non-empty value.
func (s *ClusterCreateSpec) Property(key string) (string, bool) {
	if s == nil || s.ExtendedProperties == nil {
		return "", false
	}
	v, ok := s.ExtendedProperties[key]
	if !ok || v == nil {
		return "", false
	}
	val := cast.ToString(v)
	return val, val != ""
}

// String returns a pointer to s
func String(s string) *string { return &s }

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
