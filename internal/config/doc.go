// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the smart-notes client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (HuJSON: comments and trailing commas allowed)
//
// Fields still empty afterwards are filled from built-in defaults. The main
// entry point is [GetClientConfig].
package config
