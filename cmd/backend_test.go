package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// fakeBackend serves the login and publications endpoints. It accepts the
// password "secret" and answers publications with publishStatus, recording
// the last multipart form.
type fakeBackend struct {
	*httptest.Server
	publishStatus int

	mu     sync.Mutex
	values map[string][]string
	files  []string
	calls  int
}

func newBackend(t *testing.T, publishStatus int) *fakeBackend {
	t.Helper()
	b := &fakeBackend{publishStatus: publishStatus}

	r := mux.NewRouter()
	r.HandleFunc("/login", b.login).Methods(http.MethodPost)
	r.HandleFunc("/publications", b.publish).Methods(http.MethodPost)

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Close)
	return b
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Password != "secret" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"userId": "u42", "token": "tok"})
}

func (b *fakeBackend) publish(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.values = r.MultipartForm.Value
	b.files = nil
	for _, fh := range r.MultipartForm.File["images"] {
		b.files = append(b.files, fh.Filename)
	}
	w.WriteHeader(b.publishStatus)
}

// value returns the single value sent for a text part.
func (b *fakeBackend) value(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v := b.values[name]; len(v) == 1 {
		return v[0]
	}
	return ""
}
