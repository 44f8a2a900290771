package submit

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gaurav-prasanna/rfpdraft/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitPostsMultipartForm(t *testing.T) {
	var (
		gotPath, gotDesc, gotName, gotFile, gotUA string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.UserAgent()
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotDesc = r.FormValue("description")
		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		gotName = fh.Filename
		data, _ := io.ReadAll(f)
		gotFile = string(data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "process_rfp", WithUserAgent("test-agent"))
	body, err := c.Submit(context.Background(), core.Upload{
		FileName:    "/tmp/docs/rfp.pdf",
		File:        strings.NewReader("%PDF-fake"),
		Description: "We build bridges",
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"response":[]}`, string(body))
	assert.Equal(t, "/process_rfp", gotPath)
	assert.Equal(t, "We build bridges", gotDesc)
	assert.Equal(t, "rfp.pdf", gotName)
	assert.Equal(t, "%PDF-fake", gotFile)
	assert.Equal(t, "test-agent", gotUA)
}

func TestSubmitNon2xxIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Submit(context.Background(), core.Upload{FileName: "a.txt", File: strings.NewReader("x")})

	require.ErrorIs(t, err, core.ErrNetworkFailure)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestSubmitTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, "").Submit(context.Background(), core.Upload{FileName: "a.txt", File: strings.NewReader("x")})

	assert.ErrorIs(t, err, core.ErrNetworkFailure)
}

func TestSubmitTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(srv.URL, "", WithTimeout(50*time.Millisecond)).
		Submit(context.Background(), core.Upload{FileName: "a.txt", File: strings.NewReader("x")})

	assert.ErrorIs(t, err, core.ErrNetworkFailure)
}

func TestSubmitRequiresFile(t *testing.T) {
	_, err := New("http://example.invalid", "").Submit(context.Background(), core.Upload{FileName: "a.txt"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNetworkFailure)
}

func TestURL(t *testing.T) {
	assert.Equal(t, "https://api.example.com/process_rfp", New("https://api.example.com", "").URL())
	assert.Equal(t, "https://api.example.com/v2/generate", New("https://api.example.com/", "/v2/generate").URL())
}
