package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress is a flag.Value for listen addresses.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the server flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-db-driver database driver (postgres|sqlite)
//	-redis redis address in format [host]:[port]
//	-c/-config json file path with configs
//	-jwt-secret base64 JWT signing secret
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-card-master-key base64 AES master key for card keys
//	-card-hmac-key base64 HMAC key for card fingerprints
//	-admin-secret-hash bcrypt hash of the admin secret
//	-card-months default card validity in months
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-expiry-interval card expiry check interval (e.g., "24h")
//	-cors comma separated CORS origins
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("bank-cards", flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN, databaseDriver, redisAddress string
	var jsonConfigPath string
	var jwtSecret, tokenIssuer string
	var tokenDuration, requestTimeout, expiryInterval time.Duration
	var cardMasterKey, cardHMACKey, adminSecretHash string
	var cardMonths int
	var corsOrigins string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "db-driver", "", "Database driver (postgres|sqlite)")
	fs.StringVar(&redisAddress, "redis", "", "Redis address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&jwtSecret, "jwt-secret", "", "Base64 JWT signing secret")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.StringVar(&cardMasterKey, "card-master-key", "", "Base64 AES master key")
	fs.StringVar(&cardHMACKey, "card-hmac-key", "", "Base64 HMAC key for card numbers")
	fs.StringVar(&adminSecretHash, "admin-secret-hash", "", "Bcrypt hash of the admin secret")
	fs.IntVar(&cardMonths, "card-months", 0, "Default card validity in months")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&expiryInterval, "expiry-interval", 0, "Card expiry check interval (e.g., 24h)")
	fs.StringVar(&corsOrigins, "cors", "", "Comma separated CORS origins")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			JWTSecret:              jwtSecret,
			TokenIssuer:            tokenIssuer,
			TokenDuration:          tokenDuration,
			CardMasterKey:          cardMasterKey,
			CardHMACKey:            cardHMACKey,
			AdminSecretHash:        adminSecretHash,
			CardMonthsUntilExpires: cardMonths,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
			Cache: Cache{
				RedisAddress: redisAddress,
			},
		},
		Server: Server{
			HTTPAddress:        serverAddress.String(),
			GRPCAddress:        grpcServerAddress.String(),
			RequestTimeout:     requestTimeout,
			CORSAllowedOrigins: splitList(corsOrigins),
		},
		Workers: Workers{
			ExpiryInterval: expiryInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// parseDocsFlags parses the flags of the OpenAPI exporter.
//
//	-prod use the Docker host bridge URL
//	-o output directory
//	-f output file name
//	-local-url override of the loopback URL
//	-prod-url override of the Docker host bridge URL
func parseDocsFlags(args []string) (*Docs, error) {
	fs := flag.NewFlagSet("apidocs", flag.ContinueOnError)

	docs := &Docs{}
	fs.BoolVar(&docs.Prod, "prod", false, "Use the production documentation URL")
	fs.StringVar(&docs.OutputDir, "o", "", "Output directory")
	fs.StringVar(&docs.OutputFile, "f", "", "Output file name")
	fs.StringVar(&docs.LocalURL, "local-url", "", "Local documentation URL")
	fs.StringVar(&docs.ProdURL, "prod-url", "", "Production documentation URL")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return docs, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String returns host:port, or "" for a zero address. IPv6 hosts are
// bracketed.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set accepts host:port where host is empty, "localhost" or an IP literal.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host, a.Port = host, port
	return nil
}
