// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transport carries structured messages between the host and the
// device MobileSync service.
//
// Messages travel over a DeviceLink stream: every frame is a 4-byte
// big-endian length followed by a binary property list. The protocol is
// strictly stop-and-wait, so a [Session] never has more than one request
// outstanding.
package transport

import (
	"context"

	"github.com/MKhiriev/go-contact-sync/internal/message"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// Session is a reliable, ordered, synchronous message channel to the device.
// Failures are reported wrapped in [models.ErrConnection], or in
// [models.ErrProtocol] when a frame cannot be decoded.
type Session interface {
	// Send writes one message and returns once it has been handed to the
	// underlying connection.
	Send(ctx context.Context, msg *message.Node) error

	// Receive blocks until the next message arrives or ctx is done.
	Receive(ctx context.Context) (*message.Node, error)
}

// Device is a [Session] with an explicit connect/disconnect lifecycle.
type Device interface {
	Session

	// Connect opens the MobileSync service and completes the DeviceLink
	// version exchange. Connecting twice fails with [ErrAlreadyConnected].
	Connect(ctx context.Context) error

	// Disconnect says goodbye to the device and releases the connection.
	// It is safe to call on a disconnected device.
	Disconnect(ctx context.Context) error

	// Connected reports whether the device has an open session.
	Connected() bool
}
