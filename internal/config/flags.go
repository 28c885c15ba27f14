package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from args, which must not
// include the program name. --help yields pflag.ErrHelp.
//
// Flags:
//
//	-a/--address          control API address in format [host]:[port]
//	--device              MobileSync service address [host]:[port]
//	--device-dial-timeout device connect timeout
//	--device-io-timeout   per message I/O timeout
//	--object-class        data class to negotiate
//	--max-chunks          upper bound on chunks per slow sync
//	--xslt-dir            directory holding pcont2osync.xslt
//	--xsltproc            xsltproc executable
//	-d/--dsn              anchor database DSN
//	--sync-engine         sync engine base URL
//	--sync-engine-timeout sync engine request timeout
//	--hash-key            HashSHA256 signing key
//	--dry-run             print change events instead of posting them
//	--request-timeout     control API request timeout
//	--token-sign-key      token signing key
//	--token-issuer        token issuer name
//	--token-duration      token duration (e.g., "1h", "30m")
//	--sync-interval       pause between periodic sync cycles
//	--log-level           zerolog level name
//	-c/--config           json file path with configs
//	--issue-token         print a control API token for an operator and exit
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, deviceAddress NetAddress
	var dialTimeout, ioTimeout time.Duration
	var objectClass string
	var maxChunks int
	var stylesheetDir, xsltProcPath string
	var databaseDSN string
	var syncEngine string
	var syncEngineTimeout time.Duration
	var hashKey string
	var dryRun bool
	var requestTimeout time.Duration
	var tokenSignKey, tokenIssuer string
	var tokenDuration time.Duration
	var syncInterval time.Duration
	var logLevel string
	var jsonConfigPath string
	var issueToken string

	fs := pflag.NewFlagSet("contact-sync", pflag.ContinueOnError)
	fs.VarP(&serverAddress, "address", "a", "Control API address host:port")
	fs.Var(&deviceAddress, "device", "MobileSync service address host:port")
	fs.DurationVar(&dialTimeout, "device-dial-timeout", 0, "Device connect timeout (e.g., 10s)")
	fs.DurationVar(&ioTimeout, "device-io-timeout", 0, "Per message device I/O timeout (e.g., 1m)")
	fs.StringVar(&objectClass, "object-class", "", "Data class to negotiate with the device")
	fs.IntVar(&maxChunks, "max-chunks", 0, "Upper bound on record chunks per slow sync")
	fs.StringVar(&stylesheetDir, "xslt-dir", "", "Directory holding pcont2osync.xslt")
	fs.StringVar(&xsltProcPath, "xsltproc", "", "xsltproc executable")
	fs.StringVarP(&databaseDSN, "dsn", "d", "", "Anchor database DSN (sqlite file or postgres:// URL)")
	fs.StringVar(&syncEngine, "sync-engine", "", "Sync engine base URL")
	fs.DurationVar(&syncEngineTimeout, "sync-engine-timeout", 0, "Sync engine request timeout (e.g., 30s)")
	fs.StringVar(&hashKey, "hash-key", "", "HashSHA256 signing key")
	fs.BoolVar(&dryRun, "dry-run", false, "Print change events as JSON lines instead of posting them")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Control API request timeout (e.g., 30s, 1m)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Pause between periodic sync cycles (e.g., 5m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVarP(&jsonConfigPath, "config", "c", "", "JSON config file path")
	fs.StringVar(&issueToken, "issue-token", "", "Print a control API token for the operator and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			LogLevel:      logLevel,
		},
		Device: Device{
			Address:     deviceAddress.String(),
			DialTimeout: dialTimeout,
			IOTimeout:   ioTimeout,
			ObjectClass: objectClass,
		},
		Sync: Sync{
			MaxChunks:     maxChunks,
			StylesheetDir: stylesheetDir,
			XSLTProcPath:  xsltProcPath,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    syncEngine,
			RequestTimeout: syncEngineTimeout,
			HashKey:        hashKey,
			DryRun:         dryRun,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
		IssueToken:   issueToken,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
