// Package handler turns typed request handlers into http.HandlerFunc.
//
// A handler receives a Context and a request struct filled by binders, and
// returns a Response. Page responses are templ components: plain requests
// get HTML, DataStar requests get the same components as SSE patches.
//
//	type submitRequest struct {
//		Form   string     `path:"form"`
//		Values url.Values `form:"*"`
//	}
//
//	func submit(ctx handler.Context, req submitRequest) handler.Response {
//		return handler.SSE(func(stream handler.StreamContext) error {
//			return stream.SendComponent(views.Toast(t), handler.WithTarget("#toast-container"),
//				handler.WithPatchMode(handler.PatchPrepend))
//		})
//	}
//
// Errors returned from binders or Render go to the ErrorHandler. The one
// built by NewErrorHandler maps HTTPError, ValidationError and binder
// failures to a status code and renders an error page or an error toast.
package handler
