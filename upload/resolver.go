// Package upload resolves schema upload payloads into decoded mappings.
//
// A payload names exactly one source: an inline JSON/YAML blob, a URL to
// fetch, or a local file path. Resolution errors form their own taxonomy
// (missing_source, fetch_failed, decode_failed) distinct from property
// validation issues: they describe the request shape, not schema content,
// and map to client errors at the HTTP boundary.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Source error codes.
const (
	CodeMissingSource = "missing_source"
	CodeFetchFailed   = "fetch_failed"
	CodeDecodeFailed  = "decode_failed"
)

// SourceError reports a failure to resolve an upload payload.
type SourceError struct {
	Code    string
	Message string
	Cause   error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SourceError) Unwrap() error { return e.Cause }

// sourceKeys are the recognized payload keys, in resolution order.
var sourceKeys = []string{"json", "url", "file"}

// Resolver turns upload payloads into decoded schema mappings.
type Resolver struct {
	client   *http.Client
	maxBytes int64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the http.Client used for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		if c != nil {
			r.client = c
		}
	}
}

// WithMaxBytes caps the number of body bytes read from URL and file
// sources. Zero disables the cap.
func WithMaxBytes(n int64) Option {
	return func(r *Resolver) { r.maxBytes = n }
}

// NewResolver builds a Resolver with a timeout-bounded default client.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		client:   &http.Client{Timeout: 30 * time.Second},
		maxBytes: 10 << 20,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve decodes the single source named by payload into a mapping.
// Exactly one of the keys "json", "url", "file" must be present.
func (r *Resolver) Resolve(ctx context.Context, payload map[string]any) (map[string]any, error) {
	var present []string
	for _, k := range sourceKeys {
		if v, ok := payload[k]; ok && v != nil {
			present = append(present, k)
		}
	}
	if len(present) == 0 {
		return nil, &SourceError{Code: CodeMissingSource, Message: "payload must contain one of: json, url, file"}
	}
	if len(present) > 1 {
		return nil, &SourceError{
			Code:    CodeMissingSource,
			Message: "payload must contain exactly one source, got: " + strings.Join(present, ", "),
		}
	}

	switch present[0] {
	case "json":
		return resolveInline(payload["json"])
	case "url":
		u, ok := payload["url"].(string)
		if !ok || u == "" {
			return nil, &SourceError{Code: CodeFetchFailed, Message: "url must be a non-empty string"}
		}
		return r.fetchURL(ctx, u)
	default:
		p, ok := payload["file"].(string)
		if !ok || p == "" {
			return nil, &SourceError{Code: CodeFetchFailed, Message: "file must be a non-empty path"}
		}
		return r.readFile(p)
	}
}

func resolveInline(v any) (map[string]any, error) {
	switch b := v.(type) {
	case map[string]any:
		return b, nil
	case string:
		return Decode([]byte(b), "")
	case []byte:
		return Decode(b, "")
	}
	return nil, &SourceError{Code: CodeDecodeFailed, Message: fmt.Sprintf("inline source must be an object or a string, got %T", v)}
}

func (r *Resolver) fetchURL(ctx context.Context, u string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &SourceError{Code: CodeFetchFailed, Message: "invalid url", Cause: err}
	}
	req.Header.Set("Accept", "application/json, application/yaml")
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &SourceError{Code: CodeFetchFailed, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &SourceError{Code: CodeFetchFailed, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
	data, err := r.readAll(resp.Body)
	if err != nil {
		return nil, &SourceError{Code: CodeFetchFailed, Message: "reading body failed", Cause: err}
	}
	m, derr := Decode(data, resp.Header.Get("Content-Type"))
	if derr != nil {
		return nil, derr
	}
	return unwrapEnvelope(m), nil
}

func (r *Resolver) readFile(path string) (map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Code: CodeFetchFailed, Message: "open failed", Cause: err}
	}
	defer f.Close()
	data, err := r.readAll(f)
	if err != nil {
		return nil, &SourceError{Code: CodeFetchFailed, Message: "read failed", Cause: err}
	}
	return Decode(data, contentTypeForExt(filepath.Ext(path)))
}

func (r *Resolver) readAll(src io.Reader) ([]byte, error) {
	if r.maxBytes > 0 {
		src = io.LimitReader(src, r.maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if r.maxBytes > 0 && int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("source exceeds %d bytes", r.maxBytes)
	}
	return data, nil
}

// Decode sniffs and decodes a document. An explicit JSON or YAML content
// type decides the codec; otherwise JSON is attempted first with YAML as
// fallback. The decoded document must be an object.
func Decode(data []byte, contentType string) (map[string]any, error) {
	switch normalizeContentType(contentType) {
	case "application/json":
		return decodeJSON(data)
	case "application/yaml", "application/x-yaml", "text/yaml":
		return decodeYAML(data)
	}
	if m, err := decodeJSON(data); err == nil {
		return m, nil
	}
	m, err := decodeYAML(data)
	if err != nil {
		return nil, &SourceError{Code: CodeDecodeFailed, Message: "content is neither valid JSON nor valid YAML", Cause: err}
	}
	return m, nil
}

func decodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &SourceError{Code: CodeDecodeFailed, Message: "invalid json", Cause: err}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &SourceError{Code: CodeDecodeFailed, Message: "expected an object document"}
	}
	return m, nil
}

func decodeYAML(data []byte) (map[string]any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, &SourceError{Code: CodeDecodeFailed, Message: "invalid yaml", Cause: err}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &SourceError{Code: CodeDecodeFailed, Message: "expected an object document"}
	}
	return m, nil
}

// unwrapEnvelope lifts the common {"data": {...}} response envelope some
// registries wrap fetched schemas in.
func unwrapEnvelope(m map[string]any) map[string]any {
	if len(m) == 1 {
		if inner, ok := m["data"].(map[string]any); ok {
			return inner
		}
	}
	return m
}

func normalizeContentType(ct string) string {
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}

func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	}
	return ""
}
