package transport

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/MKhiriev/go-contact-sync/internal/message"
	"github.com/MKhiriev/go-contact-sync/models"
)

// frameHeaderLength is the size of the big-endian payload length prefix.
const frameHeaderLength = 4

// MaxFrameLength caps a single DeviceLink payload. Large address books are
// delivered in many chunks, so 16 MB leaves ample headroom.
const MaxFrameLength = 16 * 1024 * 1024

// WriteFrame encodes msg as a binary property list and writes it to w as
// one length-prefixed frame.
func WriteFrame(w io.Writer, msg *message.Node) error {
	payload, err := message.MarshalBinary(msg)
	if err != nil {
		return fmt.Errorf("%w: encode frame: %w", models.ErrProtocol, err)
	}
	if len(payload) > MaxFrameLength {
		return fmt.Errorf("%w: %w: %d bytes", models.ErrProtocol, ErrFrameTooLarge, len(payload))
	}

	var header [frameHeaderLength]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("%w: write frame header: %w", models.ErrConnection, err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("%w: write frame payload: %w", models.ErrConnection, err)
	}
	return nil
}

// ReadFrame reads one length-prefixed frame from r and decodes its property
// list payload.
func ReadFrame(r io.Reader) (*message.Node, error) {
	var header [frameHeaderLength]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: read frame header: %w", models.ErrConnection, err)
	}

	length := binary.BigEndian.Uint32(header[:])
	if length > MaxFrameLength {
		return nil, fmt.Errorf("%w: %w: %d bytes", models.ErrProtocol, ErrFrameTooLarge, length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: read frame payload: %w", models.ErrConnection, err)
	}

	msg, err := message.Unmarshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: decode frame: %w", models.ErrProtocol, err)
	}
	return msg, nil
}
