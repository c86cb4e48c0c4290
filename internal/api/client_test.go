package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vietdv277/cirrus/pkg/provider"
	"github.com/vietdv277/cirrus/pkg/types"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), srv.URL, opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientValidatesEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "not a url", "/relative/path"} {
		if _, err := NewClient(context.Background(), endpoint); err == nil {
			t.Errorf("NewClient(%q): expected error", endpoint)
		}
	}

	c, err := NewClient(context.Background(), "https://cloud.example.com:9000/")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.Endpoint() != "https://cloud.example.com:9000" {
		t.Errorf("unexpected endpoint %s", c.Endpoint())
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"id":"p1","name":"proj","tenant":{"id":"t1","name":"tenant-a"}}`)
	}, WithToken("s3cret"))

	project, err := c.GetProject(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if auth != "Bearer s3cret" {
		t.Errorf("unexpected Authorization header %q", auth)
	}

	want := &types.Project{ID: "p1", Name: "proj", TenantID: "t1", TenantName: "tenant-a"}
	if diff := cmp.Diff(want, project); diff != "" {
		t.Errorf("project mismatch (-want +got):\n%s", diff)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantNotFound bool
		wantMessage  string
	}{
		{"json 404", http.StatusNotFound, `{"code":"ClusterNotFound","message":"cluster c1 not found"}`, true, "ClusterNotFound: cluster c1 not found"},
		{"plain 500", http.StatusInternalServerError, "boom\n", false, "boom"},
		{"empty 403", http.StatusForbidden, "", false, "api returned status 403"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := NewClusterProvider(c).Get(context.Background(), "c1")

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("status: got %d, want %d", apiErr.StatusCode, tt.status)
			}
			if errors.Is(err, provider.ErrNotFound) != tt.wantNotFound {
				t.Errorf("errors.Is(ErrNotFound) = %v, want %v", !tt.wantNotFound, tt.wantNotFound)
			}
			if err.Error() != tt.wantMessage {
				t.Errorf("message: got %q, want %q", err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestClusterProviderEndpoints(t *testing.T) {
	type call struct {
		Method string
		Path   string
		Body   string
	}
	var calls []call

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, call{r.Method, r.URL.Path, string(body)})

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/projects/p1/clusters":
			_, _ = io.WriteString(w, `{"id":"c1","name":"mesos-01","state":"CREATING","type":"MESOS","workerCount":2}`)
		case r.URL.Path == "/clusters/c1/vms":
			_, _ = io.WriteString(w, `{"items":[{"id":"vm1","name":"master","state":"READY"}]}`)
		case r.Method == http.MethodGet:
			_, _ = io.WriteString(w, `{"id":"c1","type":"MESOS","extendedProperties":{"dns":"10.0.0.2"}}`)
		default:
			w.WriteHeader(http.StatusAccepted)
		}
	})
	p := NewClusterProvider(c)
	ctx := context.Background()

	created, err := p.Create(ctx, "p1", &types.ClusterCreateSpec{Name: "mesos-01", Type: types.ClusterTypeMesos, WorkerCount: 2})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.GetType() != "MESOS" || created.GetWorkerCount() != 2 {
		t.Errorf("unexpected cluster %+v", created)
	}

	got, err := p.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.GetProperty("dns") != "10.0.0.2" {
		t.Errorf("unexpected properties %v", got.ExtendedProperties)
	}

	vms, err := p.ListVMs(ctx, "c1")
	if err != nil || len(vms) != 1 || !vms[0].IsReady() {
		t.Fatalf("ListVMs: %v %+v", err, vms)
	}

	for name, op := range map[string]func() (bool, error){
		"resize":      func() (bool, error) { return p.Resize(ctx, "c1", 4) },
		"delete":      func() (bool, error) { return p.Delete(ctx, "c1") },
		"maintenance": func() (bool, error) { return p.TriggerMaintenance(ctx, "c1") },
	} {
		if ok, err := op(); err != nil || !ok {
			t.Errorf("%s: got (%v, %v)", name, ok, err)
		}
	}

	var createBody map[string]any
	if err := json.Unmarshal([]byte(calls[0].Body), &createBody); err != nil {
		t.Fatalf("create body: %v", err)
	}
	if createBody["name"] != "mesos-01" || createBody["type"] != "MESOS" {
		t.Errorf("unexpected create body %v", createBody)
	}

	seen := map[string]string{}
	for _, c := range calls[3:] {
		seen[c.Method+" "+c.Path] = c.Body
	}
	if body, ok := seen["POST /clusters/c1/resize"]; !ok || body != `{"newWorkerCount":4}` {
		t.Errorf("resize not sent as expected: %v", seen)
	}
	if _, ok := seen["DELETE /clusters/c1"]; !ok {
		t.Errorf("delete not sent: %v", seen)
	}
	if _, ok := seen["POST /clusters/c1/trigger_maintenance"]; !ok {
		t.Errorf("maintenance not sent: %v", seen)
	}
}

func TestImageCaptureProvider(t *testing.T) {
	var taskQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vms/vm1/create_image":
			_, _ = io.WriteString(w, `{"id":"img9","name":"snap","state":"CREATING"}`)
		case "/images/img9/tasks":
			taskQuery = r.URL.RawQuery
			_, _ = io.WriteString(w, `{"items":[{"id":"t1","state":"ERROR","operation":"CREATE_IMAGE","entityId":"img9"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	p := NewImageCaptureProvider(c)

	img, err := p.CreateFromVM(context.Background(), "vm1", &types.ImageCreateFromVMSpec{Name: "snap"})
	if err != nil {
		t.Fatalf("CreateFromVM: %v", err)
	}
	if img.GetID() != "img9" {
		t.Errorf("unexpected image %+v", img)
	}

	tasks, err := p.Tasks(context.Background(), "img9", "ERROR")
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if taskQuery != "state=ERROR" {
		t.Errorf("unexpected query %q", taskQuery)
	}
	want := []types.Task{{ID: "t1", State: "ERROR", Operation: "CREATE_IMAGE", EntityID: "img9"}}
	if diff := cmp.Diff(want, tasks); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}
