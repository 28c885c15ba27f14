// Package xslt applies the contact stylesheet to plist XML documents by
// running xsltproc.
package xslt

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/xslt_mock.go -package=mock

// Transformer applies a fixed stylesheet to XML documents.
type Transformer interface {
	// Apply transforms input and returns the serialized result. Failures
	// wrap [models.ErrTransform].
	Apply(ctx context.Context, input []byte, opts Options) ([]byte, error)

	// Check verifies that the stylesheet and the processor are usable.
	Check() error
}
