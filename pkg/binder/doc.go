// Package binder fills request structs from HTTP requests for handler.Wrap.
//
// Each binder reads one source and its own struct tag:
//
//   - Form(): `form:"name"` and `file:"name"` from urlencoded or multipart bodies
//   - JSON(): strict application/json bodies
//   - Query(): `query:"name"` from the URL
//   - Path(extractor): `path:"name"` from router parameters
//
// Form and JSON return ErrBinderNotApplicable for bodies of the other media
// type, so both can sit in one chain:
//
//	handler.Wrap(validate, handler.WithBinders(
//		binder.Path(chi.URLParam),
//		binder.Form(),
//		binder.JSON(),
//	))
//
// The catch-all tags `form:"*"` and `file:"*"` capture the whole submission,
// which is how form controllers receive fields they declare at runtime.
package binder
