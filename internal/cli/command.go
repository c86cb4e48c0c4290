package cli

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/vietdv277/cirrus/pkg/types"
)

// Command is a rendered invocation of the external tool.
// Args is passed to the executor as-is; no shell is involved.
type Command struct {
	Args   []string
	values map[int]bool // positions holding interpolated non-numeric values
}

// String renders the command the way an operator would type it, with every
// interpolated non-numeric value single-quoted.
func (c Command) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		if c.values[i] {
			parts[i] = quote(a)
			continue
		}
		parts[i] = a
	}
	return strings.Join(parts, " ")
}

// commandBuilder appends tokens in a fixed order
type commandBuilder struct {
	args   []string
	values map[int]bool
}

func newCommand(words ...string) *commandBuilder {
	return &commandBuilder{args: append([]string(nil), words...), values: map[int]bool{}}
}

// value appends a positional value
func (b *commandBuilder) value(v string) *commandBuilder {
	b.values[len(b.args)] = true
	b.args = append(b.args, v)
	return b
}

// number appends a positional numeric value, rendered unquoted
func (b *commandBuilder) number(v any) *commandBuilder {
	b.args = append(b.args, cast.ToString(v))
	return b
}

// flag appends a flag with its value
func (b *commandBuilder) flag(name, v string) *commandBuilder {
	b.args = append(b.args, name)
	return b.value(v)
}

// numberFlag appends a flag with a numeric value
func (b *commandBuilder) numberFlag(name string, v any) *commandBuilder {
	b.args = append(b.args, name)
	return b.number(v)
}

// optional appends the flag only when v is non-empty
func (b *commandBuilder) optional(name, v string) *commandBuilder {
	if v == "" {
		return b
	}
	return b.flag(name, v)
}

func (b *commandBuilder) build() Command {
	return Command{Args: b.args, values: b.values}
}

// ClusterCreateCommand renders `cluster create`. Flags for the CLI-managed
// subtype are only added when spec.Type equals cliType.
func ClusterCreateCommand(tenant, project string, spec *types.ClusterCreateSpec, cliType types.ClusterType) Command {
	b := newCommand("cluster", "create").
		flag("-t", tenant).
		flag("-p", project).
		flag("-n", spec.Name).
		flag("-k", string(spec.Type)).
		flag("-v", spec.VMFlavor).
		flag("-d", spec.DiskFlavor).
		optional("-w", spec.VMNetworkID).
		numberFlag("-c", spec.WorkerCount)

	prop := func(key string) string {
		v, _ := spec.Property(key)
		return v
	}

	b.optional("--dns", prop(types.PropertyDNS)).
		optional("--gateway", prop(types.PropertyGateway)).
		optional("--netmask", prop(types.PropertyNetmask))

	if spec.Type == cliType {
		b.optional("--etcd1", prop(types.PropertyEtcdIP1)).
			optional("--etcd2", prop(types.PropertyEtcdIP2)).
			optional("--etcd3", prop(types.PropertyEtcdIP3)).
			optional("--master-ip", prop(types.PropertyMasterIP)).
			optional("--container-network", prop(types.PropertyContainerNetwork))
	}
	return b.build()
}

func ClusterShowCommand(id string) Command {
	return newCommand("cluster", "show").value(id).build()
}

func ClusterListVMsCommand(id string) Command {
	return newCommand("cluster", "list_vms").value(id).build()
}

func ClusterResizeCommand(id string, workerCount int) Command {
	return newCommand("cluster", "resize").value(id).number(workerCount).build()
}

func ClusterDeleteCommand(id string) Command {
	return newCommand("cluster", "delete").value(id).build()
}

func ClusterMaintenanceCommand(id string) Command {
	return newCommand("cluster", "trigger_maintenance").value(id).build()
}

// ImageCreateCommand renders `image create`; -i is added only when
// replication is set.
func ImageCreateCommand(path, name, replication string) Command {
	return newCommand("image", "create").
		value(path).
		flag("-n", name).
		optional("-i", replication).
		build()
}

func ImageShowCommand(id string) Command {
	return newCommand("image", "show").value(id).build()
}

func ImageListCommand() Command {
	return newCommand("image", "list").build()
}

func ImageDeleteCommand(id string) Command {
	return newCommand("image", "delete").value(id).build()
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
