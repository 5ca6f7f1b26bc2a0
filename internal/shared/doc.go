// Package shared holds utilities used across the codebase that belong to no
// single layer.
//
// Currently this is only testutil: test helpers shared by the package-level
// and integration tests. Domain logic never lives here.
package shared
