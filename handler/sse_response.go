package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// SSEHandler streams patches until it returns or the client goes away.
type SSEHandler func(stream StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "http.error.sse_required")
	}
	return s.handler(&streamContext{
		Context: NewContext(w, r),
		sse:     datastar.NewSSE(w, r),
	})
}

// SSE opens a patch stream for a DataStar request and runs h on it.
// Non-DataStar requests get a 400.
func SSE(h SSEHandler) Response {
	return sseResponse{handler: h}
}
