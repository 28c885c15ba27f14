// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] can drive a sync
// cycle. Token issuing mode only needs the signing key.
func (cfg *StructuredConfig) validate() error {
	if cfg.IssueToken != "" {
		if cfg.App.TokenSignKey == "" {
			return ErrInvalidAppConfigs
		}
		return nil
	}

	if cfg.Device.Address == "" || cfg.Device.ObjectClass == "" {
		return ErrInvalidDeviceConfigs
	}

	if cfg.Sync.MaxChunks < 1 || cfg.Sync.StylesheetDir == "" || cfg.Sync.XSLTProcPath == "" {
		return ErrInvalidSyncConfigs
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if !cfg.Adapter.DryRun && (cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0) {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Server.HTTPAddress != "" && cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
