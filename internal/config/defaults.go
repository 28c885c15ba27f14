package config

import (
	"time"

	"github.com/MKhiriev/go-contact-sync/models"
)

const (
	DefaultMaxChunks     = 10000
	DefaultXSLTProcPath  = "xsltproc"
	DefaultStylesheetDir = "xslt"
	DefaultDSN           = "contact-sync.db"
	DefaultSyncInterval  = 5 * time.Minute
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-contact-sync",
			TokenDuration: 24 * time.Hour,
			LogLevel:      "info",
		},
		Device: Device{
			DialTimeout: 10 * time.Second,
			IOTimeout:   time.Minute,
			ObjectClass: models.ObjectClassContacts,
		},
		Sync: Sync{
			MaxChunks:     DefaultMaxChunks,
			StylesheetDir: DefaultStylesheetDir,
			XSLTProcPath:  DefaultXSLTProcPath,
		},
		Storage: Storage{
			DB: DB{DSN: DefaultDSN},
		},
		Server: Server{
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			SyncInterval: DefaultSyncInterval,
		},
	}
}
