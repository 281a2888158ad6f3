package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func methods(chain []Strategy) []Method {
	out := make([]Method, 0, len(chain))
	for _, s := range chain {
		out = append(out, s.Method)
	}
	return out
}

func TestChain_Composition(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []Method
	}{
		{
			name: "everything configured prefers proxy then remote",
			opts: Options{ScraperAPIKey: "k", BrowserlessURL: "wss://b", UseBrowser: true},
			want: []Method{MethodProxy, MethodRemote, MethodDirect},
		},
		{
			name: "local browser when no remote",
			opts: Options{UseBrowser: true},
			want: []Method{MethodHeadless, MethodDirect},
		},
		{
			name: "nothing configured leaves direct only",
			opts: Options{},
			want: []Method{MethodDirect},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.opts, nil)
			assert.Equal(t, tt.want, methods(f.Chain()))
		})
	}
}

func TestRenderChain_ExcludesDirect(t *testing.T) {
	f := New(Options{ScraperAPIKey: "k", BrowserlessURL: "wss://b"}, nil)
	assert.Equal(t, []Method{MethodProxy, MethodRemote}, methods(f.RenderChain()))

	bare := New(Options{}, nil)
	assert.Empty(t, bare.RenderChain())
}

func TestDirect_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body>job posting</body></html>"))
	}))
	defer srv.Close()

	f := New(Options{}, nil)
	markup, method := f.Fetch(context.Background(), srv.URL, false)

	assert.Equal(t, MethodDirect, method)
	assert.Contains(t, markup, "job posting")
	assert.Equal(t, UserAgent, gotUA, "direct fetch sends browser-like headers")
}

func TestDirect_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := New(Options{}, nil)
	markup, method := f.Fetch(context.Background(), srv.URL, false)

	assert.Empty(t, markup)
	assert.Empty(t, string(method))
}

func TestDirect_InvalidURL(t *testing.T) {
	f := New(Options{}, nil)
	_, err := f.DirectStrategy().Run(context.Background(), "not-a-url", false)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, MethodDirect, fetchErr.Method)
}

func TestRun_FallsThroughFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>served</html>"))
	}))
	defer srv.Close()

	f := New(Options{}, nil)
	chain := []Strategy{
		{Method: MethodProxy, Run: func(context.Context, string, bool) (string, error) {
			return "", errors.New("proxy down")
		}},
		{Method: MethodRemote, Run: func(context.Context, string, bool) (string, error) {
			return "", nil // empty markup also falls through
		}},
		f.DirectStrategy(),
	}

	markup, method := f.Run(context.Background(), chain, srv.URL, false)
	assert.Equal(t, MethodDirect, method)
	assert.Contains(t, markup, "served")
}

func TestProxy_ForwardsRenderFlag(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte("<html>proxied</html>"))
	}))
	defer srv.Close()

	f := New(Options{ScraperAPIKey: "key", ProxyURL: srv.URL}, nil)
	markup, err := f.proxy(context.Background(), "https://example.com/job", true)

	require.NoError(t, err)
	assert.Contains(t, markup, "proxied")
	assert.Equal(t, "key", got.Get("api_key"))
	assert.Equal(t, "https://example.com/job", got.Get("url"))
	assert.Equal(t, "true", got.Get("render"))
}

func TestTruncateURL_RuneBoundary(t *testing.T) {
	assert.Equal(t, "https://example.com", truncateURL("https://example.com"))

	out := truncateURL("https://example.com/q" + strings.Repeat("語", 40))
	assert.True(t, utf8.ValidString(out))
	assert.LessOrEqual(t, len(out), 80)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &Error{URL: "https://example.com", Method: MethodProxy, Message: "failed", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "proxy")
}
