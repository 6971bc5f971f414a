// Package config provides configuration loading, merging, and validation
// facilities for the fx-desk client and its development backend.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Fields still empty after all sources take the Default* values.
// The main entry points are [GetClientConfig] and [GetServerConfig].
package config
