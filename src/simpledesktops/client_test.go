package simpledesktops_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "git.asdf.cafe/abs3nt/simpledesktop/errors"
	"git.asdf.cafe/abs3nt/simpledesktop/src/simpledesktops"
)

const pageResponse = `{
  "meta": {
    "limit": 1,
    "next": "/v1/desktop_mobile/?format=json&limit=1&offset=4",
    "offset": 3,
    "previous": "/v1/desktop_mobile/?format=json&limit=1&offset=2",
    "total_count": 512
  },
  "objects": [
    {
      "creator": {"email": null, "name": "Jane Doe", "url": "http://example.com"},
      "id": "1234",
      "iphone_thumb": "http://static.simpledesktops.com/thumbs/sunset.png",
      "permalink": "/browse/desktops/2012/jan/01/sunset/",
      "title": "Sunset",
      "url": "http://static.simpledesktops.com/desktops/sunset.png"
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *simpledesktops.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := simpledesktops.NewClient(nil)
	c.BaseURL = server.URL + "/v1/desktop_mobile/?format=json&limit=1"
	return c
}

func TestClient_FetchPage(t *testing.T) {
	var gotOffset, gotLimit, gotAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotOffset = r.URL.Query().Get("offset")
		gotLimit = r.URL.Query().Get("limit")
		gotAgent = r.UserAgent()
		_, err := w.Write([]byte(pageResponse))
		require.NoError(t, err)
	})

	page, err := c.FetchPage(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "3", gotOffset)
	assert.Equal(t, "1", gotLimit)
	assert.NotEmpty(t, gotAgent)

	assert.Equal(t, uint32(512), page.Metadata.TotalCount)
	assert.Equal(t, uint32(3), page.Metadata.Offset)
	require.NotNil(t, page.Metadata.Next)
	require.Len(t, page.Entries, 1)

	entry := page.Entries[0]
	assert.Equal(t, "Sunset", entry.Title)
	assert.Equal(t, "http://static.simpledesktops.com/desktops/sunset.png", entry.ImageURL)
	assert.Equal(t, "http://static.simpledesktops.com/thumbs/sunset.png", entry.ThumbnailURL)
	assert.Nil(t, entry.Creator.Email)
	require.NotNil(t, entry.Creator.Name)
	assert.Equal(t, "Jane Doe", *entry.Creator.Name)
}

func TestClient_TotalCount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.URL.Query().Get("offset"))
		_, _ = w.Write([]byte(pageResponse))
	})

	total, err := c.TotalCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(512), total)
}

func TestClient_FetchPageErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    apperrors.Kind
	}{
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"meta": `))
			},
			kind: apperrors.KindDeserialization,
		},
		{
			name: "wrong shape",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"meta": {"total_count": "many"}, "objects": []}`))
			},
			kind: apperrors.KindDeserialization,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			kind: apperrors.KindRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			_, err := c.FetchPage(context.Background(), 0)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperrors.KindOf(err), "error: %v", err)
		})
	}
}

func TestClient_FetchPageTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	c := simpledesktops.NewClient(nil)
	c.BaseURL = server.URL + "/?format=json&limit=1"

	_, err := c.FetchPage(context.Background(), 0)
	assert.True(t, apperrors.Is(err, apperrors.KindRequest), "error: %v", err)
}

func TestClient_FetchImage(t *testing.T) {
	image := []byte("\x89PNG fake image bytes")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(image)
	})
	base := c.BaseURL[:len(c.BaseURL)-len("/v1/desktop_mobile/?format=json&limit=1")]

	var buf bytes.Buffer
	n, err := c.FetchImage(context.Background(), base+"/sunset.png", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(image)), n)
	assert.Equal(t, image, buf.Bytes())

	_, err = c.FetchImage(context.Background(), base+"/missing.png", &buf)
	assert.True(t, apperrors.Is(err, apperrors.KindRequest), "error: %v", err)

	_, err = c.FetchImage(context.Background(), base+"/sunset.png", failingWriter{})
	assert.True(t, apperrors.Is(err, apperrors.KindIO), "error: %v", err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}
