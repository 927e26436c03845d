package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gsc/internal/api"
	"gsc/internal/config"
	"gsc/internal/overwrite"
)

// fixture is an in-memory gsc server. Submissions are keyed by homework
// number, which doubles as the submission id, and every mutation the
// client performs is recorded for assertions.
type fixture struct {
	t           *testing.T
	server      *httptest.Server
	files       map[int][]api.FileMeta
	content     map[string][]byte
	uploads     map[string][]byte
	deleted     []string
	patched     map[string][]byte
	subPatches  map[int][]byte
	userPatches map[string][]byte
	users       []api.User
	out         bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		t:           t,
		files:       make(map[int][]api.FileMeta),
		content:     make(map[string][]byte),
		uploads:     make(map[string][]byte),
		patched:     make(map[string][]byte),
		subPatches:  make(map[int][]byte),
		userPatches: make(map[string][]byte),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users", f.handleUsers)
	mux.HandleFunc("GET /api/users/{user}", f.handleUser)
	mux.HandleFunc("PATCH /api/users/{user}", f.handleUserPatch)
	mux.HandleFunc("GET /api/users/{user}/submissions", f.handleSubmissions)
	mux.HandleFunc("GET /api/submissions/{hw}", f.handleSubmission)
	mux.HandleFunc("PATCH /api/submissions/{hw}", f.handleSubmissionPatch)
	mux.HandleFunc("GET /api/submissions/{hw}/files", f.handleFiles)
	mux.HandleFunc("GET /api/submissions/{hw}/files/{name}", f.handleDownload)
	mux.HandleFunc("PUT /api/submissions/{hw}/files/{name}", f.handleUpload)
	mux.HandleFunc("DELETE /api/submissions/{hw}/files/{name}", f.handleDelete)
	mux.HandleFunc("PATCH /api/submissions/{hw}/files/{name}", f.handlePatch)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

// addSubmission registers an empty submission for a homework.
func (f *fixture) addSubmission(hw int) {
	if _, ok := f.files[hw]; !ok {
		f.files[hw] = []api.FileMeta{}
	}
}

// addFile registers one remote file with its content.
func (f *fixture) addFile(hw int, name string, purpose api.FilePurpose, body string) {
	f.addSubmission(hw)
	f.files[hw] = append(f.files[hw], api.FileMeta{
		AssignmentNumber: hw,
		ByteCount:        int64(len(body)),
		Name:             name,
		Purpose:          purpose,
		UploadTime:       api.Timestamp{Time: time.Date(2026, 2, 3, 20, 30, 0, 0, time.UTC)},
		URI:              fmt.Sprintf("/api/submissions/%d/files/%s", hw, name),
	})
	f.content[fmt.Sprintf("%d/%s", hw, name)] = []byte(body)
}

// client builds a Client against the fixture with a scripted overwrite
// prompt. The dotfile is pointed at a temp location so cookie saves
// never touch the real home directory.
func (f *fixture) client(t *testing.T, mode overwrite.Mode, promptInput string) *Client {
	t.Setenv("GSC_LOGIN", filepath.Join(t.TempDir(), ".gsclogin"))
	t.Setenv("GSC_ENDPOINT", "")

	cfg := config.New()
	cfg.Endpoint = f.server.URL
	cfg.Username = "alice"

	policy := overwrite.NewWithPrompt(mode, strings.NewReader(promptInput), io.Discard)
	c := New(cfg, policy)
	c.SetOut(&f.out)
	return c
}

func (f *fixture) hwFromPath(r *http.Request) (int, bool) {
	hw, err := strconv.Atoi(r.PathValue("hw"))
	if err != nil {
		return 0, false
	}
	_, ok := f.files[hw]
	return hw, ok
}

func (f *fixture) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	var subs []api.SubmissionShort
	for hw := range f.files {
		subs = append(subs, api.SubmissionShort{
			AssignmentNumber: hw,
			ID:               hw,
			URI:              fmt.Sprintf("/api/submissions/%d", hw),
			Owner1:           api.UserShort{Name: r.PathValue("user")},
		})
	}
	json.NewEncoder(w).Encode(subs)
}

func (f *fixture) handleFiles(w http.ResponseWriter, r *http.Request) {
	hw, ok := f.hwFromPath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	json.NewEncoder(w).Encode(f.files[hw])
}

func (f *fixture) handleDownload(w http.ResponseWriter, r *http.Request) {
	hw, _ := f.hwFromPath(r)
	body, ok := f.content[fmt.Sprintf("%d/%s", hw, r.PathValue("name"))]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Write(body)
}

func (f *fixture) handleUpload(w http.ResponseWriter, r *http.Request) {
	hw, ok := f.hwFromPath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.uploads[fmt.Sprintf("%d/%s", hw, r.PathValue("name"))] = body
	w.WriteHeader(http.StatusOK)
}

func (f *fixture) handleDelete(w http.ResponseWriter, r *http.Request) {
	hw, _ := f.hwFromPath(r)
	f.deleted = append(f.deleted, fmt.Sprintf("%d/%s", hw, r.PathValue("name")))
	w.WriteHeader(http.StatusOK)
}

func (f *fixture) handleSubmission(w http.ResponseWriter, r *http.Request) {
	hw, ok := f.hwFromPath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var used int64
	for _, file := range f.files[hw] {
		used += file.ByteCount
	}
	json.NewEncoder(w).Encode(api.Submission{
		AssignmentNumber: hw,
		ID:               hw,
		URI:              fmt.Sprintf("/api/submissions/%d", hw),
		Owner1:           api.UserShort{Name: "alice"},
		BytesUsed:        used,
		BytesQuota:       1000,
		OpenDate:         api.Timestamp{Time: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		DueDate:          api.Timestamp{Time: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		EvalDate:         api.Timestamp{Time: time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)},
		LastModified:     api.Timestamp{Time: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
		EvalStatus:       api.EvalEmpty,
		Status:           api.StatusOpen,
	})
}

func (f *fixture) handleSubmissionPatch(w http.ResponseWriter, r *http.Request) {
	hw, ok := f.hwFromPath(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	body, _ := io.ReadAll(r.Body)
	f.subPatches[hw] = body
	w.WriteHeader(http.StatusOK)
}

func (f *fixture) handleUsers(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(f.users)
}

// handleUser authenticates with a fixed password and echoes the account.
func (f *fixture) handleUser(w http.ResponseWriter, r *http.Request) {
	if _, password, ok := r.BasicAuth(); ok && password != "hunter2" {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(api.ErrorBody{Status: 401, Title: "Unauthorized"})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "gsc_session", Value: "deadbeef"})
	json.NewEncoder(w).Encode(api.User{Name: r.PathValue("user"), Role: api.RoleStudent})
}

func (f *fixture) handleUserPatch(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.userPatches[r.PathValue("user")] = body
	w.WriteHeader(http.StatusOK)
}

func (f *fixture) handlePatch(w http.ResponseWriter, r *http.Request) {
	hw, _ := f.hwFromPath(r)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.patched[fmt.Sprintf("%d/%s", hw, r.PathValue("name"))] = body
	w.WriteHeader(http.StatusOK)
}

// writeLocal creates a local file for upload and download tests.
func writeLocal(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
