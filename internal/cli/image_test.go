package cli

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vietdv277/cirrus/pkg/provider"
)

func TestImageCreateGeneratesName(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]response{
		"image create": {out: "img1\n"},
		"image show":   {out: "img1\timage-fixed\tCREATING\t\t\t\t\t\n"},
	}}
	p := NewImageProvider(exec, nil)
	p.newName = func(prefix string) string { return prefix + "fixed" }

	img, err := p.Create(context.Background(), "/tmp/a.vmdk", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if img.GetName() != "image-fixed" {
		t.Errorf("unexpected image %+v", img)
	}

	want := []string{"image", "create", "/tmp/a.vmdk", "-n", "image-fixed"}
	if diff := cmp.Diff(want, exec.calls[0]); diff != "" {
		t.Errorf("create args mismatch (-want +got):\n%s", diff)
	}
}

func TestImageCreateWithReplication(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]response{
		"image create": {out: "img1\n"},
		"image show":   {out: "img1\tubuntu\tREADY\t10\tEAGER\t\t\t\n"},
	}}
	p := NewImageProvider(exec, nil)

	_, err := p.Create(context.Background(), "/tmp/a.vmdk", &provider.ImageCreateOptions{Name: "ubuntu", Replication: "EAGER"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	want := []string{"image", "create", "/tmp/a.vmdk", "-n", "ubuntu", "-i", "EAGER"}
	if diff := cmp.Diff(want, exec.calls[0]); diff != "" {
		t.Errorf("create args mismatch (-want +got):\n%s", diff)
	}
}

func TestImageCreateOrphan(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]response{
		"image create": {out: "img1\n"},
		"image show":   {out: "\tno id\n"},
	}}
	p := NewImageProvider(exec, nil)

	_, err := p.Create(context.Background(), "/tmp/a.vmdk", &provider.ImageCreateOptions{Name: "x"})

	var orphan *provider.OrphanError
	if !errors.As(err, &orphan) || orphan.ID != "img1" {
		t.Fatalf("expected orphan img1, got %v", err)
	}
	if !errors.Is(err, provider.ErrParse) {
		t.Errorf("orphan should wrap the parse failure, got %v", err)
	}
}

func TestImageList(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]response{
		"image list":      {out: "img1\tubuntu\tREADY\nimg2\tgone\tREADY\nimg3\tcentos\tREADY\n"},
		"image show img1": {out: "img1\tubuntu\tREADY\t\t\t\t\t\n"},
		"image show img2": {err: &provider.CommandError{Message: "ImageNotFound", Kind: provider.KindNotFound}},
		"image show img3": {out: "img3\tcentos\tREADY\t\t\t\t\t\n"},
	}}
	p := NewImageProvider(exec, nil)

	images, err := p.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var ids []string
	for _, img := range images {
		ids = append(ids, img.GetID())
	}
	if diff := cmp.Diff([]string{"img1", "img3"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestImageListAbortsOnFailure(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]response{
		"image list":      {out: "img1\tubuntu\tREADY\nimg2\tbad\tREADY\n"},
		"image show img1": {out: "img1\tubuntu\tREADY\t\t\t\t\t\n"},
		"image show img2": {err: &provider.CommandError{Message: "internal error", Kind: provider.KindExecutionFailed}},
	}}
	p := NewImageProvider(exec, nil)

	images, err := p.List(context.Background())
	if err == nil || images != nil {
		t.Fatalf("got (%v, %v), want (nil, error)", images, err)
	}
}

func TestImageListAbortsOnOtherResourceNotFound(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	script := filepath.Join(t.TempDir(), "tool")
	body := `#!/bin/sh
case "$1 $2" in
"image list") printf 'a\tx\nb\tx\nc\tx\n' ;;
"image show")
	if [ "$3" = b ]; then echo "VmNotFound: datastore vm missing" >&2; exit 1; fi
	printf '%s\tx\tREADY\t\t\t\t\t\n' "$3" ;;
*) exit 2 ;;
esac
`
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}
	p := NewImageProvider(NewExecRunner(WithBinary(script)), nil)

	images, err := p.List(context.Background())
	if err == nil || images != nil {
		t.Fatalf("got (%v, %v), want (nil, error)", images, err)
	}
	if errors.Is(err, provider.ErrNotFound) {
		t.Errorf("VmNotFound on an image should not classify as not found: %v", err)
	}
}

func TestImageDelete(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]response{"image delete": {}}}
	p := NewImageProvider(exec, nil)

	ok, err := p.Delete(context.Background(), "img1")
	if err != nil || !ok {
		t.Fatalf("got (%v, %v), want (true, nil)", ok, err)
	}
}
