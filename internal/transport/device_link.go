package transport

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/MKhiriev/go-contact-sync/internal/config"
	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/message"
	"github.com/MKhiriev/go-contact-sync/models"
)

type dialFunc func(ctx context.Context) (net.Conn, error)

type deviceLink struct {
	dial      dialFunc
	ioTimeout time.Duration

	mu   sync.Mutex
	conn net.Conn

	logger *logger.Logger
}

// NewDeviceLink returns a [Device] that reaches the MobileSync service over
// TCP at cfg.Address, typically a port forwarded by usbmuxd.
func NewDeviceLink(cfg config.Device, log *logger.Logger) Device {
	dialer := &net.Dialer{Timeout: cfg.DialTimeout}
	return newDeviceLink(func(ctx context.Context) (net.Conn, error) {
		return dialer.DialContext(ctx, "tcp", cfg.Address)
	}, cfg.IOTimeout, log)
}

func newDeviceLink(dial dialFunc, ioTimeout time.Duration, log *logger.Logger) *deviceLink {
	return &deviceLink{
		dial:      dial,
		ioTimeout: ioTimeout,
		logger:    log,
	}
}

// Connect implements [Device].
func (d *deviceLink) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn != nil {
		return ErrAlreadyConnected
	}

	conn, err := d.dial(ctx)
	if err != nil {
		d.logger.Err(err).Str("func", "deviceLink.Connect").Msg("failed to start MobileSync service")
		return fmt.Errorf("%w: failed to start MobileSync service: %w", models.ErrConnection, err)
	}

	if err = d.exchangeVersions(ctx, conn); err != nil {
		d.logger.Err(err).Str("func", "deviceLink.Connect").Msg("DeviceLink version exchange failed")
		_ = conn.Close()
		return err
	}

	d.conn = conn
	d.logger.Info().Str("func", "deviceLink.Connect").Msg("MobileSync service connected")
	return nil
}

// exchangeVersions runs the DeviceLink handshake: the device announces its
// protocol version, the host accepts it and waits for the device to report
// it is ready.
func (d *deviceLink) exchangeVersions(ctx context.Context, conn net.Conn) error {
	announce, err := d.receive(ctx, conn)
	if err != nil {
		return err
	}
	if cmd, _ := message.Command(announce); cmd != message.MsgVersionExchange {
		return fmt.Errorf("%w: expected %s, got %q", models.ErrProtocol, message.MsgVersionExchange, cmd)
	}

	major, _ := announce.At(1)
	minor, _ := announce.At(2)
	majorVersion, _ := major.UintValue()
	minorVersion, _ := minor.UintValue()
	d.logger.Debug().
		Str("func", "deviceLink.exchangeVersions").
		Uint64("major", majorVersion).
		Uint64("minor", minorVersion).
		Msg("device announced DeviceLink version")

	if err = d.send(ctx, conn, message.NewEnvelope(message.MsgVersionExchange, message.VersionsOk)); err != nil {
		return err
	}

	ready, err := d.receive(ctx, conn)
	if err != nil {
		return err
	}
	if cmd, _ := message.Command(ready); cmd != message.MsgDeviceReady {
		return fmt.Errorf("%w: expected %s, got %q", models.ErrProtocol, message.MsgDeviceReady, cmd)
	}
	return nil
}

// Disconnect implements [Device].
func (d *deviceLink) Disconnect(ctx context.Context) error {
	d.mu.Lock()
	conn := d.conn
	d.conn = nil
	d.mu.Unlock()

	if conn == nil {
		return nil
	}

	bye := message.NewEnvelope(message.MsgDisconnect, message.DisconnectFarewell)
	if err := d.send(ctx, conn, bye); err != nil {
		d.logger.Warn().Err(err).Str("func", "deviceLink.Disconnect").Msg("device did not accept disconnect message")
	}

	if err := conn.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", models.ErrConnection, err)
	}
	d.logger.Info().Str("func", "deviceLink.Disconnect").Msg("MobileSync service disconnected")
	return nil
}

// Connected implements [Device].
func (d *deviceLink) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conn != nil
}

// Send implements [Session].
func (d *deviceLink) Send(ctx context.Context, msg *message.Node) error {
	conn, err := d.current()
	if err != nil {
		return err
	}
	return d.send(ctx, conn, msg)
}

// Receive implements [Session].
func (d *deviceLink) Receive(ctx context.Context) (*message.Node, error) {
	conn, err := d.current()
	if err != nil {
		return nil, err
	}
	return d.receive(ctx, conn)
}

func (d *deviceLink) current() (net.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil, fmt.Errorf("%w: %w", models.ErrConnection, ErrNotConnected)
	}
	return d.conn, nil
}

func (d *deviceLink) send(ctx context.Context, conn net.Conn, msg *message.Node) error {
	stop := d.bind(ctx, conn)
	defer stop()

	if err := WriteFrame(conn, msg); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: send: %w", models.ErrConnection, ctx.Err())
		}
		return err
	}
	return nil
}

func (d *deviceLink) receive(ctx context.Context, conn net.Conn) (*message.Node, error) {
	stop := d.bind(ctx, conn)
	defer stop()

	msg, err := ReadFrame(conn)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: receive: %w", models.ErrConnection, ctx.Err())
		}
		return nil, err
	}
	return msg, nil
}

// bind applies the I/O timeout and ctx deadline to conn and interrupts
// blocked I/O when ctx is cancelled. The returned func releases the binding.
func (d *deviceLink) bind(ctx context.Context, conn net.Conn) func() bool {
	var deadline time.Time
	if d.ioTimeout > 0 {
		deadline = time.Now().Add(d.ioTimeout)
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (deadline.IsZero() || ctxDeadline.Before(deadline)) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)

	return context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
}
