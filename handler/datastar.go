package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarRequestHeader is sent by the DataStar client on every action.
	DataStarRequestHeader = "Datastar-Request"
	eventStreamMediaType  = "text/event-stream"
)

// Patch modes for toasts and list items.
const (
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether r expects an SSE patch stream instead of a page.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), eventStreamMediaType)
}
