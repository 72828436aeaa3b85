// Package views holds the site's templ components. Every string a view
// receives is already translated and is escaped on output.
package views
