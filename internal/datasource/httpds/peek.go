package httpds

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// FetchFirstBytes retrieves up to n bytes from url using HTTP GET.
//
// It sends a Range header ("bytes=0-(n-1)") as an optimization and also
// caps the read client-side, so the result stays bounded even when the
// server ignores Range. The returned slice length is <= n.
func (c *Client) FetchFirstBytes(ctx context.Context, url string, n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("httpds: n must be > 0")
	}

	h := make(http.Header)
	h.Set("Range", fmt.Sprintf("bytes=0-%d", n-1))

	resp, err := c.Do(ctx, url, h)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("httpds: GET %s: unexpected status %d", url, resp.StatusCode)
	}

	lr := &io.LimitedReader{R: resp.Body, N: int64(n)}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(lr); err != nil {
		return nil, fmt.Errorf("httpds: read body: %w", err)
	}
	return buf.Bytes(), nil
}

// CutAtLastNewline trims a byte sample back to its last complete line.
// A Range fetch usually chops the final record mid-field; feeding that
// partial line to the sniffer would skew the inferred types. When the
// sample contains no newline at all it is returned unchanged.
func CutAtLastNewline(sample []byte) []byte {
	i := bytes.LastIndexByte(sample, '\n')
	if i < 0 {
		return sample
	}
	return sample[:i+1]
}
