// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidNote  = errors.New("invalid note")
	ErrInvalidPatch = errors.New("invalid note patch")
)
