// Package domain contains the error vocabulary shared by the envclean layers.
//
// It has no dependencies on infrastructure concerns. The text model itself
// (entries, results) lives in pkg/normalize so it can be used on its own.
package domain
