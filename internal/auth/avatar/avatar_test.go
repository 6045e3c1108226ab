package avatar

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type capturedPut struct {
	method      string
	path        string
	contentType string
	body        []byte
}

// fakeS3 accepts path-style PutObject calls and remembers the last one.
func fakeS3(t *testing.T) (*httptest.Server, func() capturedPut) {
	t.Helper()
	var (
		mu   sync.Mutex
		last capturedPut
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		last = capturedPut{method: r.Method, path: r.URL.Path, contentType: r.Header.Get("Content-Type"), body: body}
		mu.Unlock()
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, func() capturedPut {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func newTestS3Store(t *testing.T, endpoint, publicBase string) *S3Store {
	t.Helper()
	s, err := NewS3Store(context.Background(), S3Config{
		Bucket:        "avatars-bucket",
		Region:        "us-east-1",
		Endpoint:      endpoint,
		AccessKey:     "minioadmin",
		SecretKey:     "minioadmin",
		PublicBaseURL: publicBase,
	})
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestS3Store_Upload(t *testing.T) {
	srv, last := fakeS3(t)
	s := newTestS3Store(t, srv.URL, "")
	img := pngBytes(t)

	url, err := s.Upload(context.Background(), "image/png", bytes.NewReader(img), int64(len(img)))
	require.NoError(t, err)

	keyRe := `avatars/2026/03/07/[0-9a-f-]{36}\.png`
	require.Regexp(t, regexp.MustCompile("^"+regexp.QuoteMeta(srv.URL)+"/avatars-bucket/"+keyRe+"$"), url)

	put := last()
	require.Equal(t, http.MethodPut, put.method)
	require.Regexp(t, "^/avatars-bucket/"+keyRe+"$", put.path)
	require.Equal(t, "image/png", put.contentType)
	require.True(t, bytes.Contains(put.body, img))
}

func TestS3Store_PublicBaseURL(t *testing.T) {
	srv, _ := fakeS3(t)
	s := newTestS3Store(t, srv.URL, "https://cdn.example.com/")
	img := pngBytes(t)

	url, err := s.Upload(context.Background(), "image/png", bytes.NewReader(img), int64(len(img)))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://cdn.example.com/avatars/2026/03/07/"))
}

func TestS3Store_Delete(t *testing.T) {
	for name, publicBase := range map[string]string{
		"endpoint url": "",
		"public base":  "https://cdn.example.com",
	} {
		t.Run(name, func(t *testing.T) {
			srv, last := fakeS3(t)
			s := newTestS3Store(t, srv.URL, publicBase)
			img := pngBytes(t)

			url, err := s.Upload(context.Background(), "image/png", bytes.NewReader(img), int64(len(img)))
			require.NoError(t, err)
			key := url[strings.Index(url, "avatars/2026"):]

			require.NoError(t, s.Delete(context.Background(), url))
			del := last()
			require.Equal(t, http.MethodDelete, del.method)
			require.Equal(t, "/avatars-bucket/"+key, del.path)
		})
	}
}

func TestS3Store_DeleteRejectsForeignURL(t *testing.T) {
	srv, last := fakeS3(t)
	s := newTestS3Store(t, srv.URL, "")

	require.Error(t, s.Delete(context.Background(), "https://elsewhere.example.com/avatars/x.png"))
	require.Error(t, s.Delete(context.Background(), srv.URL+"/avatars-bucket/other/x.png"))
	require.Empty(t, last().method)
}

func TestS3Store_RejectsNonImages(t *testing.T) {
	srv, last := fakeS3(t)
	s := newTestS3Store(t, srv.URL, "")

	_, err := s.Upload(context.Background(), "text/plain", strings.NewReader("hello"), 5)
	require.ErrorIs(t, err, ErrUnsupportedAvatar)

	// Declared as an image but the bytes say otherwise.
	_, err = s.Upload(context.Background(), "image/png", strings.NewReader("<html>nope</html>"), 17)
	require.ErrorIs(t, err, ErrUnsupportedAvatar)

	require.Empty(t, last().method, "nothing should reach the bucket")
}

func TestS3Store_RejectsOversized(t *testing.T) {
	srv, _ := fakeS3(t)
	s := newTestS3Store(t, srv.URL, "")

	_, err := s.Upload(context.Background(), "image/png", strings.NewReader(""), MaxSize+1)
	require.ErrorIs(t, err, ErrAvatarTooLarge)

	big := append(pngBytes(t), make([]byte, MaxSize)...)
	_, err = s.Upload(context.Background(), "image/png", bytes.NewReader(big), -1)
	require.ErrorIs(t, err, ErrAvatarTooLarge)
}

func TestS3Store_BucketError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<?xml version="1.0"?><Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
	}))
	defer srv.Close()

	s := newTestS3Store(t, srv.URL, "")
	img := pngBytes(t)
	_, err := s.Upload(context.Background(), "image/png", bytes.NewReader(img), int64(len(img)))
	require.ErrorContains(t, err, "put object")
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Upload(context.Background(), "image/png", strings.NewReader("x"), 1)
	require.ErrorIs(t, err, ErrAvatarsDisabled)
	require.NoError(t, Disabled{}.Delete(context.Background(), "https://cdn.example.com/avatars/x.png"))
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{})
	require.Error(t, err)
}
