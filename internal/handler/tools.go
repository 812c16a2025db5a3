package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/webtilians/backA/internal/tools"
)

// ListTools handles GET /tools. The definitions can be passed unchanged as
// the tools of an OpenAI chat completion request.
func (s *Server) ListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ToolsResponse{Tools: s.tools.Definitions()})
}

// InvokeTool handles POST /tools/{name}. The body is the tool's raw JSON
// arguments. Tool failures are reported in the result's ok flag with a 200
// status, exactly as the orchestrator would receive them.
func (s *Server) InvokeTool(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	f := s.defaultFmt
	if format != nil {
		parsed, err := tools.ParseFormat(*format)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
			return
		}
		f = parsed
	}

	var args []byte
	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeJSON(w, http.StatusRequestEntityTooLarge, payloadTooLargeBody())
				return
			}
			writeJSON(w, http.StatusUnprocessableEntity, requestBody("could not read request body"))
			return
		}
		args = b
	}

	res := s.tools.DispatchAs(r.Context(), chi.URLParam(r, "name"), json.RawMessage(args), f)
	writeJSON(w, http.StatusOK, res)
}
