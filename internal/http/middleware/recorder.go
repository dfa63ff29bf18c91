package middleware

import "net/http"

// statusRecorder wraps http.ResponseWriter to record the status code and
// body size of the response.
type statusRecorder struct {
	http.ResponseWriter
	code  int
	bytes int
	wrote bool
}

// wrap returns w itself when it already records, so stacked middlewares
// share one recorder.
func wrap(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, code: http.StatusOK}
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.wrote {
		return
	}
	rec.code = code
	rec.wrote = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if !rec.wrote {
		rec.WriteHeader(http.StatusOK)
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

// Status returns the written status code.
func (rec *statusRecorder) Status() int { return rec.code }

// Bytes returns the number of body bytes written.
func (rec *statusRecorder) Bytes() int { return rec.bytes }

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *statusRecorder) Unwrap() http.ResponseWriter { return rec.ResponseWriter }
