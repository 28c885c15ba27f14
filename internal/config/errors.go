package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidDeviceConfigs indicates a missing device address or
	// object class.
	ErrInvalidDeviceConfigs = errors.New("invalid device configuration")
	// ErrInvalidSyncConfigs indicates an unusable chunk bound or
	// stylesheet location.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidAdapterConfigs indicates a missing sync engine address or
	// request timeout outside dry-run mode.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates an empty DSN or an unsupported
	// in-memory DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates a missing token signing key while the
	// control API or token issuing is enabled.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates a negative sync interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
