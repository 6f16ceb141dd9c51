package verification

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, handler http.HandlerFunc) *HTTPVerifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPVerifier(srv.URL+"/buscarcpf", &http.Client{Timeout: time.Second})
}

func TestHTTPVerifier_Verify(t *testing.T) {
	t.Run("known cpf", func(t *testing.T) {
		var gotPath, gotCPF string
		v := newRegistry(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotCPF = r.URL.Query().Get("cpf")
			_, _ = w.Write([]byte(`{"nome":"Maria","cpf":"52998224725"}`))
		})

		ok, err := v.Verify(context.Background(), "52998224725")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "/buscarcpf", gotPath)
		assert.Equal(t, "52998224725", gotCPF)
	})

	t.Run("explicit denial", func(t *testing.T) {
		v := newRegistry(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"CPF not found"}`))
		})

		ok, err := v.Verify(context.Background(), "52998224725")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-success status is a failure, not a verdict", func(t *testing.T) {
		v := newRegistry(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := v.Verify(context.Background(), "52998224725")
		require.Error(t, err)
		assert.Equal(t, CategoryUnavailable, CategoryOf(err))

		var ve *Error
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, http.StatusBadGateway, ve.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		bodies := map[string]string{
			"html":   `<html>maintenance</html>`,
			"null":   `null`,
			"array":  `[]`,
			"empty":  ``,
			"string": `"error"`,
		}
		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				v := newRegistry(t, func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte(body))
				})

				ok, err := v.Verify(context.Background(), "52998224725")
				require.Error(t, err)
				assert.False(t, ok)
				assert.Equal(t, CategoryBadResponse, CategoryOf(err))
			})
		}
	})

	t.Run("only a top-level error member denies", func(t *testing.T) {
		bodies := []string{
			`{"nome":"Maria","situacao":{"error":null}}`,
			`{"nome":"Maria","obs":"\"error\" in text"}`,
		}
		for _, body := range bodies {
			v := newRegistry(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			ok, err := v.Verify(context.Background(), "52998224725")
			require.NoError(t, err)
			assert.True(t, ok, body)
		}
	})

	t.Run("slow registry times out", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		t.Cleanup(srv.Close)
		t.Cleanup(func() { close(release) })

		v := NewHTTPVerifier(srv.URL, &http.Client{Timeout: 20 * time.Millisecond})
		_, err := v.Verify(context.Background(), "52998224725")
		require.Error(t, err)
		assert.Equal(t, CategoryTimeout, CategoryOf(err))
	})

	t.Run("unreachable registry", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		v := NewHTTPVerifier(url, &http.Client{Timeout: time.Second})
		_, err := v.Verify(context.Background(), "52998224725")
		require.Error(t, err)
		assert.Equal(t, CategoryUnavailable, CategoryOf(err))
	})
}

func TestNew_SelectsImplementation(t *testing.T) {
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.IsType(t, Noop{}, New(Config{Enabled: false, BaseURL: "http://registry.test"}, log))
	assert.IsType(t, Noop{}, New(Config{Enabled: true}, log))
	assert.IsType(t, &HTTPVerifier{}, New(Config{Enabled: true, BaseURL: "http://registry.test"}, log))
}

func TestNoop_AlwaysVerifies(t *testing.T) {
	ok, err := Noop{}.Verify(context.Background(), "anything")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCategoryOf_ForeignError(t *testing.T) {
	assert.Equal(t, CategoryUnavailable, CategoryOf(assert.AnError))
}
