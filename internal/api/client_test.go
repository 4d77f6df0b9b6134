package api

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apeerhq/apeer/internal/errors"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL).WithTokenSource(func() string { return "tok-123" })
	err := client.DoJSON(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL).WithTokenSource(func() string { return "" })
	err := client.DoJSON(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_StatusClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind errors.Kind
	}{
		{name: "401 unauthorized", status: http.StatusUnauthorized, wantKind: errors.KindUnauthorized},
		{name: "403 forbidden", status: http.StatusForbidden, wantKind: errors.KindForbidden},
		{name: "404 not found", status: http.StatusNotFound, wantKind: errors.KindNotFound},
		{name: "500 server error", status: http.StatusInternalServerError, wantKind: errors.KindServerError},
		{name: "503 server error", status: http.StatusServiceUnavailable, wantKind: errors.KindServerError},
		{name: "409 unclassified", status: http.StatusConflict, body: `{"message":"duplicate"}`, wantKind: errors.KindUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			err := client.DoJSON(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, errors.KindOf(err))
		})
	}
}

func TestClient_UnclassifiedUsesBodyDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"user already exists"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.DoJSON(context.Background(), Request{Method: http.MethodPost, Path: "/auth/register"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user already exists")
}

// A 401 from any in-flight call must fire the global hook exactly once for
// that response, regardless of which façade made the call.
func TestClient_UnauthorizedFiresGlobalHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	fired := 0
	client := NewClient(server.URL).WithUnauthorizedHook(func() { fired++ })

	err := client.DoJSON(context.Background(), Request{Method: http.MethodGet, Path: "/student/dashboard"}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.KindUnauthorized, errors.KindOf(err))
	assert.Equal(t, 1, fired)
}

func TestClient_HookNotFiredOnOtherErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fired := 0
	client := NewClient(server.URL).WithUnauthorizedHook(func() { fired++ })

	_ = client.DoJSON(context.Background(), Request{Method: http.MethodGet, Path: "/x"}, nil)
	assert.Zero(t, fired)
}

func TestClient_NetworkUnreachable(t *testing.T) {
	// Grab a port with nothing listening on it.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url)
	err := client.DoJSON(context.Background(), Request{Method: http.MethodGet, Path: "/auth/health"}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.KindNetworkUnreachable, errors.KindOf(err))
	assert.Contains(t, err.Error(), "cannot connect to server")
}

func TestClient_JSONContentType(t *testing.T) {
	var gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	err := client.DoJSON(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/x",
		Body:   map[string]string{"a": "b"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotType)
}

// Multipart payloads must keep their own boundary-carrying content type;
// the adapter must not force application/json onto them.
func TestClient_MultipartContentTypePreserved(t *testing.T) {
	var gotType string
	var gotName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotName = r.FormValue("name")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	var buf strings.Builder
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Alice"))
	require.NoError(t, mw.Close())

	client := NewClient(server.URL)
	err := client.DoJSON(context.Background(), Request{
		Method:      http.MethodPut,
		Path:        "/user/profile",
		Multipart:   strings.NewReader(buf.String()),
		ContentType: mw.FormDataContentType(),
	}, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotType, "multipart/form-data"), "got content type %q", gotType)
	assert.Equal(t, "Alice", gotName)
}

func TestFirst(t *testing.T) {
	errA := errors.NewNotFoundError("/a")
	errB := errors.NewServerError(500, "b broke")

	tests := []struct {
		name    string
		ops     []Operation
		wantErr error
	}{
		{
			name: "first success short-circuits",
			ops: []Operation{
				func(ctx context.Context) error { return nil },
				func(ctx context.Context) error { t.Fatal("second op must not run"); return nil },
			},
		},
		{
			name: "falls through to second",
			ops: []Operation{
				func(ctx context.Context) error { return errA },
				func(ctx context.Context) error { return nil },
			},
		},
		{
			name: "all fail surfaces last error",
			ops: []Operation{
				func(ctx context.Context) error { return errA },
				func(ctx context.Context) error { return errB },
			},
			wantErr: errB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := First(context.Background(), tt.ops...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantErr, err)
			}
		})
	}
}

func TestFirst_SequentialNotRacing(t *testing.T) {
	order := []string{}
	_ = First(context.Background(),
		func(ctx context.Context) error { order = append(order, "primary"); return errors.NewNotFoundError("/p") },
		func(ctx context.Context) error { order = append(order, "fallback"); return nil },
	)
	assert.Equal(t, []string{"primary", "fallback"}, order)
}

func TestClient_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, "student,score\nalice,87\n")
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "export", "activity_a1.csv")
	client := NewClient(server.URL)
	require.NoError(t, client.Download(context.Background(), "/activities/a1/export", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "student,score\nalice,87\n", string(data))
}

func TestClient_DownloadFailureLeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "report.pdf")
	client := NewClient(server.URL)
	err := client.Download(context.Background(), "/student/export/pdf", dest)
	require.Error(t, err)
	assert.Equal(t, errors.KindNotFound, errors.KindOf(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file or temp residue may remain after a failed download")
}
