// Package utils provides decorators that are shared by all handlers: panic
// recovery, logging, savepoints and metrics.
package utils
