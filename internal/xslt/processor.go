package xslt

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-contact-sync/internal/config"
	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/models"
)

// StylesheetName is the file looked up inside the stylesheet directory.
const StylesheetName = "pcont2osync.xslt"

// waitDelay bounds how long output pipes are drained after the processor
// is killed.
const waitDelay = 2 * time.Second

type processor struct {
	binary     string
	stylesheet string
	logger     *logger.Logger
}

// NewProcessor returns a [Transformer] that runs cfg.XSLTProcPath with
// StylesheetName from cfg.StylesheetDir.
func NewProcessor(cfg config.Sync, log *logger.Logger) Transformer {
	return &processor{
		binary:     cfg.XSLTProcPath,
		stylesheet: filepath.Join(cfg.StylesheetDir, StylesheetName),
		logger:     log,
	}
}

func (p *processor) Check() error {
	f, err := os.Open(p.stylesheet)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStylesheetUnavailable, p.stylesheet, err)
	}
	_ = f.Close()

	if _, err = exec.LookPath(p.binary); err != nil {
		return fmt.Errorf("%w: %w", ErrProcessorUnavailable, err)
	}
	return nil
}

func (p *processor) Apply(ctx context.Context, input []byte, opts Options) ([]byte, error) {
	args := append(opts.args(), p.stylesheet, "-")

	cmd := exec.CommandContext(ctx, p.binary, args...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		p.logger.Err(err).
			Str("func", "processor.Apply").
			Str("stylesheet", p.stylesheet).
			Str("stderr", msg).
			Msg("stylesheet transform failed")
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrTransform, ctx.Err())
		}
		return nil, fmt.Errorf("%w: xsltproc: %w: %s", models.ErrTransform, err, msg)
	}

	if len(bytes.TrimSpace(stdout.Bytes())) == 0 {
		return nil, fmt.Errorf("%w: %w", models.ErrTransform, ErrEmptyOutput)
	}

	return stdout.Bytes(), nil
}
