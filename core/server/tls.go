package server

import (
	"crypto/tls"
	"fmt"
)

// DefaultTLSConfig returns a TLS 1.2+ configuration restricted to ECDHE AEAD suites.
func DefaultTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
			tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
		},
		CurvePreferences: []tls.CurveID{
			tls.X25519,
			tls.CurveP256,
		},
	}
}

// ModernTLSConfig returns a TLS 1.3 only configuration.
func ModernTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS13,
		CurvePreferences: []tls.CurveID{
			tls.X25519,
			tls.CurveP256,
		},
	}
}

// TLSConfigOption customizes a TLS configuration.
type TLSConfigOption func(*tls.Config)

func WithTLSMinVersion(version uint16) TLSConfigOption {
	return func(cfg *tls.Config) {
		cfg.MinVersion = version
	}
}

func WithTLSClientAuth(clientAuthType tls.ClientAuthType) TLSConfigOption {
	return func(cfg *tls.Config) {
		cfg.ClientAuth = clientAuthType
	}
}

// LoadTLSFromFiles loads a PEM certificate and key pair on top of DefaultTLSConfig.
func LoadTLSFromFiles(certFile, keyFile string, opts ...TLSConfigOption) (*tls.Config, error) {
	if certFile == "" || keyFile == "" {
		return nil, ErrEmptyCertPath
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedLoadCert, err)
	}

	cfg := DefaultTLSConfig()
	cfg.Certificates = []tls.Certificate{cert}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg, nil
}

// LoadTLSFromPEM is like LoadTLSFromFiles for in-memory PEM blocks.
func LoadTLSFromPEM(certPEM, keyPEM []byte, opts ...TLSConfigOption) (*tls.Config, error) {
	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedLoadCert, err)
	}

	cfg := DefaultTLSConfig()
	cfg.Certificates = []tls.Certificate{cert}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg, nil
}
