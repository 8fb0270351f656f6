package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ardanlabs/powledger/foundation/web"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_TraceID(t *testing.T) {
	t.Log("Given the need to trace requests.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a request is handled by the app.", testID)
		{
			var traceID string
			var values *web.Values

			h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
				traceID = web.GetTraceID(ctx)
				values, _ = web.GetValues(ctx)
				return web.Respond(ctx, w, nil, http.StatusNoContent)
			}

			app := web.NewApp(make(chan os.Signal, 1))
			app.Handle(http.MethodGet, "", "/trace", h)

			w := httptest.NewRecorder()
			app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/trace", nil))

			if values == nil || traceID == "" || traceID != values.TraceID {
				t.Fatalf("\t%s\tTest %d:\tShould see the request trace id : got %q", failed, testID, traceID)
			}
			t.Logf("\t%s\tTest %d:\tShould see the request trace id.", success, testID)

			if traceID == web.GetTraceID(context.Background()) {
				t.Fatalf("\t%s\tTest %d:\tShould not use the empty trace id.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould not use the empty trace id.", success, testID)
		}

		testID = 1
		t.Logf("\tTest %d:\tWhen the context has no request values.", testID)
		{
			if id := web.GetTraceID(context.Background()); id != "00000000-0000-0000-0000-000000000000" {
				t.Fatalf("\t%s\tTest %d:\tShould get the empty trace id : got %q", failed, testID, id)
			}
			t.Logf("\t%s\tTest %d:\tShould get the empty trace id.", success, testID)
		}
	}
}
