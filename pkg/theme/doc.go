// Package theme stores the dark/light colour scheme preference in a signed
// cookie and describes the toggle button for each scheme.
package theme
