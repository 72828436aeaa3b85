// Package environment names the deployment stage and carries it through
// request contexts so handlers can render debug details only in development.
package environment
