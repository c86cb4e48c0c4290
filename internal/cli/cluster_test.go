package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vietdv277/cirrus/pkg/provider"
	"github.com/vietdv277/cirrus/pkg/types"
)

type response struct {
	out string
	err error
}

// fakeExecutor answers by the command's resource and verb
type fakeExecutor struct {
	responses map[string]response
	calls     [][]string
}

func (f *fakeExecutor) Run(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	key := strings.Join(args, " ")
	for prefix, r := range f.responses {
		if strings.HasPrefix(key, prefix) {
			return r.out, r.err
		}
	}
	return "", &provider.CommandError{Args: args, Message: "unexpected command " + key}
}

type fakeProjects struct{}

func (fakeProjects) GetProject(_ context.Context, id string) (*types.Project, error) {
	return &types.Project{ID: id, Name: "proj-" + id, TenantID: "t1", TenantName: "tenant-a"}, nil
}

func newTestClusterProvider(exec Executor) *ClusterProvider {
	return NewClusterProvider(exec, fakeProjects{}, types.ClusterTypeKubernetes, nil)
}

func TestClusterCreate(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]response{
		"cluster create": {out: "c1\n"},
		"cluster show c1": {out: "c1\tk8s-01\tCREATING\tKUBERNETES\t3\tmaster_ip:10.0.0.10\n"},
	}}
	p := newTestClusterProvider(exec)

	cluster, err := p.Create(context.Background(), "p1", &types.ClusterCreateSpec{
		Name:        "k8s-01",
		Type:        types.ClusterTypeKubernetes,
		VMFlavor:    "small",
		DiskFlavor:  "disk",
		WorkerCount: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cluster.GetID() != "c1" || cluster.GetWorkerCount() != 3 {
		t.Errorf("unexpected cluster %+v", cluster)
	}
	if cluster.GetProperty(types.PropertyMasterIP) != "10.0.0.10" {
		t.Errorf("unexpected properties %v", cluster.ExtendedProperties)
	}

	create := exec.calls[0]
	if create[3] != "tenant-a" || create[5] != "proj-p1" {
		t.Errorf("tenant and project not resolved: %v", create)
	}
}

func TestClusterCreateOrphan(t *testing.T) {
	tests := []struct {
		name   string
		show   response
		create response
		wantID string
	}{
		{
			name:   "show fails",
			create: response{out: "c1\n"},
			show:   response{err: &provider.CommandError{Message: "timeout", Kind: provider.KindExecutionFailed}},
			wantID: "c1",
		},
		{
			name:   "no id printed",
			create: response{out: "\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{responses: map[string]response{
				"cluster create": tt.create,
				"cluster show":   tt.show,
			}}
			p := newTestClusterProvider(exec)

			_, err := p.Create(context.Background(), "p1", &types.ClusterCreateSpec{Name: "k", Type: types.ClusterTypeKubernetes})

			var orphan *provider.OrphanError
			if !errors.As(err, &orphan) {
				t.Fatalf("expected *OrphanError, got %T: %v", err, err)
			}
			if orphan.ID != tt.wantID {
				t.Errorf("orphan id: got %q, want %q", orphan.ID, tt.wantID)
			}
		})
	}
}

func TestClusterCreateCommandFailure(t *testing.T) {
	boom := &provider.CommandError{Message: "InvalidFlavor", Kind: provider.KindExecutionFailed}
	exec := &fakeExecutor{responses: map[string]response{"cluster create": {err: boom}}}
	p := newTestClusterProvider(exec)

	_, err := p.Create(context.Background(), "p1", &types.ClusterCreateSpec{Name: "k", Type: types.ClusterTypeKubernetes})
	if !errors.Is(err, boom) {
		t.Fatalf("expected command error, got %v", err)
	}
	var orphan *provider.OrphanError
	if errors.As(err, &orphan) {
		t.Error("failed create must not be reported as orphan")
	}
}

func TestClusterGetNotFound(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]response{
		"cluster show": {err: &provider.CommandError{Message: "ClusterNotFound", Kind: provider.KindNotFound}},
	}}
	p := newTestClusterProvider(exec)

	if _, err := p.Get(context.Background(), "c1"); !errors.Is(err, provider.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClusterListVMs(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]response{
		"cluster list_vms c1": {out: "vm1\tmaster-1\tREADY\nvm2\tworker-1\tCREATING\n"},
	}}
	p := newTestClusterProvider(exec)

	vms, err := p.ListVMs(context.Background(), "c1")
	if err != nil {
		t.Fatalf("ListVMs: %v", err)
	}
	if len(vms) != 2 || !vms[0].IsReady() || vms[1].IsReady() {
		t.Errorf("unexpected vms %+v", vms)
	}
}

func TestClusterMutationsReturnTrue(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]response{
		"cluster resize":              {out: "some progress text"},
		"cluster delete":              {out: ""},
		"cluster trigger_maintenance": {out: "ignored"},
	}}
	p := newTestClusterProvider(exec)
	ctx := context.Background()

	ops := map[string]func() (bool, error){
		"resize":      func() (bool, error) { return p.Resize(ctx, "c1", 5) },
		"delete":      func() (bool, error) { return p.Delete(ctx, "c1") },
		"maintenance": func() (bool, error) { return p.TriggerMaintenance(ctx, "c1") },
	}
	for name, op := range ops {
		ok, err := op()
		if err != nil || !ok {
			t.Errorf("%s: got (%v, %v), want (true, nil)", name, ok, err)
		}
	}

	if got := strings.Join(exec.calls[0], " "); !strings.HasPrefix(got, "cluster ") {
		t.Errorf("unexpected call %q", got)
	}
}

func TestClusterMutationFailure(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]response{
		"cluster resize": {err: &provider.CommandError{Message: "failed", Kind: provider.KindExecutionFailed}},
	}}
	p := newTestClusterProvider(exec)

	ok, err := p.Resize(context.Background(), "c1", 5)
	if err == nil || ok {
		t.Fatalf("got (%v, %v), want (false, error)", ok, err)
	}
}
