// Package sanitizer cleans user input before it is echoed to the page or
// written to logs.
//
// Helpers are plain string functions; Chain builds a pipeline of them:
//
//	clean := sanitizer.Chain(sanitizer.RemoveControlChars, sanitizer.NormalizeWhitespace)
//	q := clean(r.FormValue("query"))
//
// StripHTML uses bluemonday's strict policy and removes all markup.
package sanitizer
