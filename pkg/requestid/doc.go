// Package requestid tags each request with an id for logs and error pages.
package requestid
