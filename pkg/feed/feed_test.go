package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rss2json = `{
  "status": "ok",
  "feed": {"title": "Good news"},
  "items": [
    {"title": "Bees  are back", "link": "https://example.org/1"},
    {"title": "Caf&eacute; opens on the pier"},
    {"link": "https://example.org/untitled"},
    {"title": "   "},
    {"title": "Café two"}
  ]
}`

const rssXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Channel title is not a headline</title>
    <item><title>Wind farm powers the island</title><link>https://example.org/a</link></item>
    <item>
      <title><![CDATA[Otters & herons return]]></title>
      <source><title>Nested title is ignored</title></source>
    </item>
  </channel>
</rss>`

const rdfXML = `<?xml version="1.0" encoding="ISO-8859-1"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns="http://purl.org/rss/1.0/">
  <channel><title>Feed</title></channel>
  <item><title>K` + "\xf8" + `benhavn cykler</title></item>
</rdf:RDF>`

func serve(t *testing.T, status int, contentType, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchJSON(t *testing.T) {
	srv := serve(t, http.StatusOK, "application/json", rss2json)

	titles, err := Fetch(context.Background(), srv.Client(), Source{URL: srv.URL, Format: JSON})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bees are back", "Café opens on the pier", "Café two"}, titles)
}

func TestFetchJSONBadStatus(t *testing.T) {
	srv := serve(t, http.StatusOK, "application/json", `{"status":"error","message":"rss_url parameter is required","items":[]}`)

	_, err := Fetch(context.Background(), srv.Client(), Source{URL: srv.URL, Format: JSON})
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestFetchJSONMalformed(t *testing.T) {
	for _, body := range []string{`{"status":"ok"`, `{"status":"ok"}`, `<html></html>`} {
		srv := serve(t, http.StatusOK, "application/json", body)
		_, err := Fetch(context.Background(), srv.Client(), Source{URL: srv.URL, Format: JSON})
		assert.Error(t, err, body)
	}
}

func TestFetchHTTPError(t *testing.T) {
	srv := serve(t, http.StatusBadGateway, "text/plain", "upstream down")

	_, err := Fetch(context.Background(), srv.Client(), Source{URL: srv.URL, Format: JSON})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestFetchXML(t *testing.T) {
	srv := serve(t, http.StatusOK, "application/rss+xml", rssXML)

	titles, err := Fetch(context.Background(), srv.Client(), Source{URL: srv.URL, Format: XML})
	require.NoError(t, err)
	assert.Equal(t, []string{"Wind farm powers the island", "Otters & herons return"}, titles)
}

func TestFetchRDFLatin1(t *testing.T) {
	srv := serve(t, http.StatusOK, "application/rdf+xml", rdfXML)

	titles, err := Fetch(context.Background(), srv.Client(), Source{URL: srv.URL, Format: XML})
	require.NoError(t, err)
	assert.Equal(t, []string{"København cykler"}, titles)
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	_, err := Fetch(context.Background(), NewClient(50*time.Millisecond), Source{URL: srv.URL})
	assert.Error(t, err)
}

func TestFetchAllSkipsFailures(t *testing.T) {
	good := serve(t, http.StatusOK, "application/json", rss2json)
	bad := serve(t, http.StatusInternalServerError, "text/plain", "boom")
	xmlSrv := serve(t, http.StatusOK, "application/xml", rssXML)

	titles := FetchAll(context.Background(), http.DefaultClient, []Source{
		{URL: bad.URL},
		{URL: good.URL},
		{URL: "http://127.0.0.1:0/unreachable"},
		{URL: xmlSrv.URL, Format: XML},
	})
	assert.Equal(t, []string{
		"Bees are back", "Café opens on the pier", "Café two",
		"Wind farm powers the island", "Otters & herons return",
	}, titles)
}

func TestFetchAllNothing(t *testing.T) {
	bad := serve(t, http.StatusNotFound, "text/plain", "")
	assert.Empty(t, FetchAll(context.Background(), nil, []Source{{URL: bad.URL}}))
	assert.Empty(t, FetchAll(context.Background(), nil, nil))
}

func TestProxied(t *testing.T) {
	src := Proxied(DefaultProxy, "https://example.org/feed/?a=1&b=2", JSON)
	assert.Equal(t, "https://api.rss2json.com/v1/api.json?rss_url=https%3A%2F%2Fexample.org%2Ffeed%2F%3Fa%3D1%26b%3D2", src.URL)
	assert.Equal(t, JSON, src.Format)

	direct := Proxied("", "https://example.org/feed/", XML)
	assert.Equal(t, "https://example.org/feed/", direct.URL)
	assert.Equal(t, XML, direct.Format)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", JSON, false},
		{"", JSON, false},
		{"XML", XML, false},
		{"rss", XML, false},
		{"atom", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.True(t, strings.EqualFold(got.String(), tt.in) || tt.in == "" || tt.in == "rss")
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Tom & Jerry", Normalize("  Tom &amp;\n Jerry "))
	assert.Equal(t, "", Normalize(" \t "))
}
