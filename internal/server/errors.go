// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrNoServersAreCreated is returned by NewServer when no listen address
	// is configured.
	ErrNoServersAreCreated = errors.New("no servers are created")
)
