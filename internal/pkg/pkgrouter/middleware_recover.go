package pkgrouter

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
)

const headerPJAX = "X-PJAX"

// wantsPage reports whether the client is a browser or PJAX navigation
// rather than an API caller.
func wantsPage(r *http.Request) bool {
	return r.Header.Get(headerPJAX) != "" || strings.Contains(r.Header.Get("Accept"), "text/html")
}

//nolint:contextcheck // recovery uses the request context
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:err113,errorlint // this must compare directly
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			slog.ErrorContext(r.Context(), "panic on the server",
				"because", rvr,
				"path", r.URL.Path,
				"stack", stackFrames(debug.Stack()),
			)

			if wantsPage(r) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				//nolint:errcheck,gosec // the client may be gone
				w.Write([]byte("<title>Internal server error</title>\n<p>Internal server error</p>\n"))
				return
			}

			writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

// stackFrames keeps the file:line entries of the module's own code.
func stackFrames(stack []byte) []string {
	var frames []string
	for _, line := range strings.Split(string(stack), "\n") {
		line, _, _ = strings.Cut(strings.TrimSpace(line), " +0x")
		idx := strings.Index(line, "/internal/")
		if idx == -1 || !strings.Contains(line, ".go:") {
			continue
		}
		frames = append(frames, line[idx+1:])
	}
	return frames
}
