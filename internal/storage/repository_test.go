package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/ejo6/DataWarehouse/internal/infer"
)

type fakeRepo struct{}

func (fakeRepo) Exec(context.Context, string) error { return nil }
func (fakeRepo) CopyFrom(context.Context, []string, [][]any) (int64, error) {
	return 0, nil
}

func fakeBackend() Backend {
	return Backend{
		New: func(ctx context.Context, cfg Config) (Repository, func(), error) {
			return fakeRepo{}, func() {}, nil
		},
		MapType: func(infer.ColumnType) string { return "TEXT" },
		Quote:   func(s string) string { return s },
	}
}

func TestRegisterLookupKinds(t *testing.T) {
	Register("fake_a", fakeBackend())
	Register("fake_b", fakeBackend())

	if _, err := Lookup("fake_a"); err != nil {
		t.Fatalf("Lookup(fake_a): %v", err)
	}

	kinds := Kinds()
	var sawA, sawB bool
	for _, k := range kinds {
		if k == "fake_a" {
			sawA = true
		}
		if k == "fake_b" {
			sawB = true
		}
	}
	if !sawA || !sawB {
		t.Fatalf("Kinds() = %v, want fake_a and fake_b present", kinds)
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] > kinds[i] {
			t.Fatalf("Kinds() not sorted: %v", kinds)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("no_such_backend")
	if err == nil {
		t.Fatal("Lookup(no_such_backend): want error, got nil")
	}
	if !strings.Contains(err.Error(), "no_such_backend") {
		t.Fatalf("error %q does not name the backend", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate Register did not panic")
		}
	}()
	Register("fake_dup", fakeBackend())
	Register("fake_dup", fakeBackend())
}

func TestRegisterIncompletePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("incomplete Register did not panic")
		}
	}()
	b := fakeBackend()
	b.MapType = nil
	Register("fake_incomplete", b)
}
