package httpds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func TestFetchFirstBytesHonorsRange(t *testing.T) {
	t.Parallel()

	payload := "id,name\n1,alpha\n2,beta\n3,gamma\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rng := r.Header.Get("Range")
		if !strings.HasPrefix(rng, "bytes=0-") {
			t.Errorf("Range header = %q, want bytes=0-N", rng)
		}
		end, _ := strconv.Atoi(strings.TrimPrefix(rng, "bytes=0-"))
		if end >= len(payload) {
			end = len(payload) - 1
		}
		w.WriteHeader(http.StatusPartialContent)
		w.Write([]byte(payload[:end+1]))
	}))
	defer server.Close()

	c := NewClient(Config{})
	got, err := c.FetchFirstBytes(context.Background(), server.URL, 10)
	if err != nil {
		t.Fatalf("FetchFirstBytes: %v", err)
	}
	if string(got) != payload[:10] {
		t.Fatalf("got %q, want %q", got, payload[:10])
	}
}

func TestFetchFirstBytesCapsIgnoredRange(t *testing.T) {
	t.Parallel()

	// Server ignores Range and replies 200 with the full body.
	payload := strings.Repeat("x", 100)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	c := NewClient(Config{})
	got, err := c.FetchFirstBytes(context.Background(), server.URL, 25)
	if err != nil {
		t.Fatalf("FetchFirstBytes: %v", err)
	}
	if len(got) != 25 {
		t.Fatalf("len = %d, want 25 (client-side cap)", len(got))
	}
}

func TestFetchFirstBytesBadN(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{})
	if _, err := c.FetchFirstBytes(context.Background(), "http://example.com", 0); err == nil {
		t.Fatal("n=0: want error")
	}
}

func TestCutAtLastNewline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing partial record dropped", "a,b\n1,2\n3,ga", "a,b\n1,2\n"},
		{"complete sample unchanged", "a,b\n1,2\n", "a,b\n1,2\n"},
		{"no newline kept as-is", "a,b", "a,b"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CutAtLastNewline([]byte(tt.in)); string(got) != tt.want {
				t.Fatalf("CutAtLastNewline(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
