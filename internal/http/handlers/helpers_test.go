package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bottegasoft/prenota-api/internal/gscript"
	"github.com/stretchr/testify/require"
)

type scriptCall struct {
	action  string
	payload map[string]any
}

// fakeScript records calls and returns a canned Result.
type fakeScript struct {
	calls  []scriptCall
	result gscript.Result
}

func (f *fakeScript) Send(_ context.Context, action string, payload map[string]any) gscript.Result {
	f.calls = append(f.calls, scriptCall{action: action, payload: payload})
	return f.result
}

func okResult(data map[string]any) gscript.Result {
	return gscript.Result{Kind: gscript.KindOK, HTTPStatus: http.StatusOK, Data: data}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func assertNoStore(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, "no-store, no-cache, must-revalidate, proxy-revalidate", w.Header().Get("Cache-Control"))
	require.Equal(t, "no-cache", w.Header().Get("Pragma"))
	require.Equal(t, "0", w.Header().Get("Expires"))
}
