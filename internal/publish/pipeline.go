// Package publish sends a draft to the backend as one multipart request.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/petpost/petpost/internal/config"
	perrors "github.com/petpost/petpost/internal/errors"
	"github.com/petpost/petpost/internal/logger"
	"github.com/petpost/petpost/internal/media"
	"github.com/petpost/petpost/internal/post"
	"github.com/petpost/petpost/internal/storage"
)

const (
	publishHTTPTimeout = 2 * time.Minute
	publicationsPath   = "/publications"
)

// Multipart field names, in the order they are written.
const (
	FieldDescription = "description"
	FieldInfo        = "info"
	FieldUserID      = "userId"
	FieldStatus      = "status"
	FieldLocation    = "location"
	FieldImages      = "images"
)

// State is the pipeline's submission state.
type State int32

const (
	StateIdle State = iota
	StateSubmitting
)

// String returns a human-readable name for the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSubmitting:
		return "Submitting"
	default:
		return "Unknown"
	}
}

// Result describes an accepted submission.
type Result struct {
	RequestID  string
	StatusCode int
	Images     int
}

// Submitter submits a draft. Pipeline is the production implementation.
type Submitter interface {
	Submit(ctx context.Context, d post.Draft) (Result, error)
}

// Pipeline validates a draft, resolves the user identity, encodes the
// multipart body and posts it. It runs one submission at a time.
type Pipeline struct {
	httpClient *http.Client
	baseURL    string
	store      storage.Store
	loader     media.Loader
	defaults   config.ServerDefaults

	state atomic.Int32
}

// NewPipeline creates a pipeline posting to {baseURL}/publications.
func NewPipeline(baseURL string, store storage.Store, loader media.Loader, defaults config.ServerDefaults) *Pipeline {
	return NewPipelineWithClient(&http.Client{Timeout: publishHTTPTimeout}, baseURL, store, loader, defaults)
}

// NewPipelineWithClient creates a pipeline with a custom HTTP client (for testing).
func NewPipelineWithClient(client *http.Client, baseURL string, store storage.Store, loader media.Loader, defaults config.ServerDefaults) *Pipeline {
	return &Pipeline{
		httpClient: client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		loader:     loader,
		defaults:   defaults,
	}
}

// State returns the current submission state.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Submit sends d. It returns a KindBusy error without side effects while
// another submission is in flight, and a KindInvalid error without side
// effects if required fields are missing. Non-2xx responses are KindHTTP;
// identity, encoding and transport failures are KindIO or KindNetwork.
func (p *Pipeline) Submit(ctx context.Context, d post.Draft) (Result, error) {
	if !p.state.CompareAndSwap(int32(StateIdle), int32(StateSubmitting)) {
		return Result{}, perrors.SubmitInProgress()
	}
	defer p.state.Store(int32(StateIdle))

	if err := d.Validate(); err != nil {
		return Result{}, err
	}

	requestID := uuid.New().String()
	log := logger.WithRequest(requestID)

	userID, err := p.resolveIdentity(ctx)
	if err != nil {
		log.Error("failed to resolve identity", "error", err)
		return Result{}, err
	}

	body, contentType, err := p.encode(ctx, d, userID)
	if err != nil {
		log.Error("failed to encode publication", "error", err)
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+publicationsPath, bytes.NewReader(body))
	if err != nil {
		return Result{}, perrors.SubmitFailed(err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-ID", requestID)

	log.Info("submitting publication", "url", req.URL.String(), "images", len(d.Images), "bytes", len(body))
	start := time.Now()

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Error("publication request failed", "error", err)
		return Result{}, perrors.SubmitFailed(err)
	}
	defer resp.Body.Close()
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("publication rejected", "status", resp.StatusCode, "body", string(snippet))
		return Result{}, perrors.SubmitRejected(resp.StatusCode)
	}

	log.Info("publication accepted", "status", resp.StatusCode, "duration", time.Since(start))
	return Result{RequestID: requestID, StatusCode: resp.StatusCode, Images: len(d.Images)}, nil
}

// resolveIdentity reads the signed-in user's ID. A missing ID is sent as
// an empty string.
func (p *Pipeline) resolveIdentity(ctx context.Context) (string, error) {
	userID, ok, err := p.store.GetItem(ctx, storage.KeyUserID)
	if err != nil {
		return "", perrors.E(perrors.Op("publish.Submit"), perrors.KindIO, "failed to resolve user identity", err)
	}
	if !ok {
		logger.ComponentLogger("Publish").Warn("no stored user id, submitting anonymously")
		return "", nil
	}
	return userID, nil
}

// Fields returns the text fields sent for d, falling back to the server
// defaults for a blank status or location.
func (p *Pipeline) Fields(d post.Draft, userID string) [][2]string {
	status := d.Status
	if status == "" {
		status = p.defaults.Status
	}
	location := d.Location
	if location == "" {
		location = p.defaults.Location
	}
	return [][2]string{
		{FieldDescription, d.Details},
		{FieldInfo, d.Info},
		{FieldUserID, userID},
		{FieldStatus, status},
		{FieldLocation, location},
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encode builds the multipart body. Images are loaded one at a time, in
// selection order.
func (p *Pipeline) encode(ctx context.Context, d post.Draft, userID string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range p.Fields(d, userID) {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", perrors.SubmitFailed(err)
		}
	}

	for i, img := range d.Images {
		data, err := p.loader.Load(ctx, img.URI)
		if err != nil {
			return nil, "", err
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			FieldImages, quoteEscaper.Replace(img.Name(i))))
		h.Set("Content-Type", http.DetectContentType(data))

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", perrors.SubmitFailed(err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", perrors.SubmitFailed(err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", perrors.SubmitFailed(err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
