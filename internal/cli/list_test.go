package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vietdv277/cirrus/pkg/provider"
)

type named struct{ ID string }

func TestFetchAllSkipsNotFound(t *testing.T) {
	fetch := func(_ context.Context, id string) (*named, error) {
		if id == "b" {
			return nil, &provider.CommandError{Message: "ImageNotFound: b", Kind: provider.KindNotFound}
		}
		return &named{ID: id}, nil
	}

	got, err := fetchAll(context.Background(), []string{"a", "b", "c"}, fetch)
	if err != nil {
		t.Fatalf("fetchAll: %v", err)
	}
	if diff := cmp.Diff([]named{{"a"}, {"c"}}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchAllAbortsOnOtherErrors(t *testing.T) {
	boom := &provider.CommandError{Message: "connection refused", Kind: provider.KindExecutionFailed}
	calls := 0
	fetch := func(_ context.Context, id string) (*named, error) {
		calls++
		if id == "b" {
			return nil, boom
		}
		return &named{ID: id}, nil
	}

	got, err := fetchAll(context.Background(), []string{"a", "b", "c"}, fetch)
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if got != nil {
		t.Errorf("expected nil list, got %v", got)
	}
	if calls != 2 {
		t.Errorf("expected fetch to stop after the failure, got %d calls", calls)
	}
}

func TestFetchAllEmpty(t *testing.T) {
	got, err := fetchAll(context.Background(), nil, func(context.Context, string) (*named, error) {
		t.Fatal("fetch called for empty list")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("fetchAll: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %v", got)
	}
}
