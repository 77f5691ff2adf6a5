package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLocalOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewLocal(path)
	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Fatalf("read %q", data)
	}
}

func TestLocalOpenMissing(t *testing.T) {
	t.Parallel()

	src := NewLocal(filepath.Join(t.TempDir(), "nope.csv"))
	_, err := src.Open(context.Background())
	if err == nil {
		t.Fatal("Open missing file: want error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("errors.Is(err, os.ErrNotExist) = false for %v", err)
	}
}

func TestLocalOpenCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewLocal("whatever.csv")
	if _, err := src.Open(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Open with canceled ctx: err = %v, want context.Canceled", err)
	}
}

func TestReadList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "inputs.txt")
	content := "# daily drops\n/data/a.csv\n\n  /data/b.csv  \n# done\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadList(path)
	if err != nil {
		t.Fatalf("ReadList: %v", err)
	}
	want := []string{"/data/a.csv", "/data/b.csv"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ReadList = %v, want %v", got, want)
	}
}

func TestReadListMissing(t *testing.T) {
	t.Parallel()

	if _, err := ReadList(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("ReadList missing file: want error")
	}
}
