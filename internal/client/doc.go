// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client application runtime.
//
// It maps commands onto the note and sync services, prints results as JSON
// and drives the background workers for the run command.
package client
