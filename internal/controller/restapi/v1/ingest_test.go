package v1

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andreyxaxa/Image-Ingestor/internal/dto"
	"github.com/andreyxaxa/Image-Ingestor/internal/entity"
	"github.com/andreyxaxa/Image-Ingestor/internal/infrastructure/codereader"
	"github.com/andreyxaxa/Image-Ingestor/internal/infrastructure/processor"
	"github.com/andreyxaxa/Image-Ingestor/internal/repo/persistent"
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase/ingest"
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase/journal"
	"github.com/andreyxaxa/Image-Ingestor/internal/usecase/operation"
	"github.com/andreyxaxa/Image-Ingestor/pkg/logger"
	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	app *fiber.App
	dir string
}

func newTestApp(t *testing.T, opName string, exposeText bool) *testApp {
	t.Helper()

	dir := t.TempDir()
	l := logger.Nop()
	p := processor.New()

	op, err := operation.New(opName, operation.Deps{
		Processor: p,
		Artifacts: persistent.NewLocalArtifactRepo(dir),
		Reader:    codereader.New(true),
		Logger:    l,
		Resize:    operation.ResizeOptions{Width: 1080, Height: 720, Format: "png"},
	})
	require.NoError(t, err)

	app := fiber.New()
	NewIngestRoutes(app, ingest.New(p, op, journal.Nop{}, 10*time.Second, l), exposeText, l)

	return &testApp{app: app, dir: dir}
}

func (a *testApp) post(t *testing.T, body string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))

	return resp.StatusCode, out
}

func imageBody(t *testing.T, mediaType string, data []byte) string {
	t.Helper()

	b, err := json.Marshal(map[string]string{
		"image": "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data),
	})
	require.NoError(t, err)

	return string(b)
}

// unpaddedBody кодирует валидный png и отрезает паддинг.
func unpaddedBody(t *testing.T, enc *base64.Encoding) string {
	t.Helper()

	for w := 7; w < 64; w++ {
		data := pngOf(t, w, 5)
		if len(data)%3 == 0 {
			continue
		}

		encoded := strings.TrimRight(enc.EncodeToString(data), "=")
		b, err := json.Marshal(map[string]string{"image": "data:image/png;base64," + encoded})
		require.NoError(t, err)

		return string(b)
	}

	t.Fatal("no png size needs padding")
	return ""
}

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestIngestValidationErrors(t *testing.T) {
	a := newTestApp(t, entity.OperationResize, false)

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "missing key", body: `{"picture": "x"}`, want: msgMissingImage},
		{name: "not json", body: `image=abc`, want: msgMissingImage},
		{name: "empty body", body: ``, want: msgMissingImage},
		{name: "image not a string", body: `{"image": 42}`, want: msgMissingImage},
		{name: "null image", body: `{"image": null}`, want: msgMissingImage},
		{name: "no comma", body: `{"image": "data:image/png;base64"}`, want: msgInvalidDataURL},
		{name: "empty string", body: `{"image": ""}`, want: msgInvalidDataURL},
		{name: "bad base64", body: `{"image": "data:image/png;base64,%%%%"}`, want: msgInvalidBase64},
		{name: "unpadded base64", body: unpaddedBody(t, base64.StdEncoding), want: msgInvalidBase64},
		{name: "url safe base64", body: unpaddedBody(t, base64.URLEncoding), want: msgInvalidBase64},
		{name: "not an image", body: imageBody(t, "image/png", []byte("definitely not a png")), want: msgUndecodableImage},
		{name: "empty payload", body: `{"image": "data:image/png;base64,"}`, want: msgUndecodableImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := a.post(t, tt.body)

			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.want, body["error"])
		})
	}

	entries, err := os.ReadDir(a.dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected requests must not store anything")
}

func TestIngestResizePNG(t *testing.T) {
	a := newTestApp(t, entity.OperationResize, false)

	status, body := a.post(t, imageBody(t, "image/png", pngOf(t, 320, 240)))
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, msgResized, body["message"])
	assert.EqualValues(t, 320, body["width"])
	assert.EqualValues(t, 240, body["height"])

	id, ok := body["id"].(string)
	require.True(t, ok)

	f, err := os.Open(filepath.Join(a.dir, "processed", id+".png"))
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 1080, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
}

func TestIngestResizeJPEG(t *testing.T) {
	a := newTestApp(t, entity.OperationResize, false)

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1920, 1080)), nil))

	status, body := a.post(t, imageBody(t, "image/jpeg", buf.Bytes()))
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1920, body["width"])
	assert.EqualValues(t, 1080, body["height"])
}

func TestIngestResizeDistinctArtifacts(t *testing.T) {
	a := newTestApp(t, entity.OperationResize, false)
	body := imageBody(t, "image/png", pngOf(t, 10, 10))

	_, first := a.post(t, body)
	_, second := a.post(t, body)
	assert.NotEqual(t, first["id"], second["id"])

	entries, err := os.ReadDir(filepath.Join(a.dir, "processed"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func qrPNG(t *testing.T, content string) []byte {
	t.Helper()

	b, err := qrcode.Encode(content, qrcode.Medium, 256)
	require.NoError(t, err)

	return b
}

func TestIngestQRCode(t *testing.T) {
	a := newTestApp(t, entity.OperationQRCode, false)

	status, body := a.post(t, imageBody(t, "image/png", qrPNG(t, "pix:12345")))
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, msgCodeDecode, body["message"])
	assert.NotContains(t, body, "text")
	assert.NotContains(t, body, "width")
}

func TestIngestQRCodeExposeText(t *testing.T) {
	a := newTestApp(t, entity.OperationQRCode, true)

	status, body := a.post(t, imageBody(t, "image/png", qrPNG(t, "pix:12345")))
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "pix:12345", body["text"])
	assert.Equal(t, "QR_CODE", body["format"])
}

func TestIngestQRCodeNotFound(t *testing.T) {
	a := newTestApp(t, entity.OperationQRCode, true)

	status, body := a.post(t, imageBody(t, "image/png", pngOf(t, 120, 120)))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, msgCodeNotFound, body["error"])
}

type failingIngest struct{}

func (failingIngest) Ingest(context.Context, string) (*dto.Outcome, error) {
	return nil, context.DeadlineExceeded
}

func TestIngestInternalError(t *testing.T) {
	app := fiber.New()
	NewIngestRoutes(app, failingIngest{}, false, logger.Nop())
	a := &testApp{app: app}

	status, body := a.post(t, `{"image": "data:image/png;base64,AAAA"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, msgInternal, body["error"])
}
