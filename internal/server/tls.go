// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/acme/autocert"

	"codeberg.org/diningguru/backend/internal/config"
)

// TLSMode is the TLS mode the server runs with.
type TLSMode string

const (
	TLSModeOff    TLSMode = "off"
	TLSModeACME   TLSMode = "acme"
	TLSModeManual TLSMode = "manual"
)

// TLSResult is the TLS setup for the resolved mode.
type TLSResult struct {
	TLSConfig   *tls.Config  // nil in off mode
	HTTPHandler http.Handler // ACME challenge + redirect on :80, acme mode only
	Mode        TLSMode
}

// SetupTLS resolves the configured mode and builds its TLS configuration.
func SetupTLS(cfg *config.Config) (*TLSResult, error) {
	mode, err := resolveTLSMode(cfg)
	if err != nil {
		return nil, err
	}

	switch mode {
	case TLSModeACME:
		if err := acmeRequirements(cfg); err != nil {
			return nil, err
		}
		return setupACME(cfg)
	case TLSModeManual:
		return setupManual(cfg)
	default:
		slog.Info("TLS disabled, serving plain HTTP")
		return &TLSResult{Mode: TLSModeOff}, nil
	}
}

// resolveTLSMode maps the configured mode to a concrete one. In auto mode a
// public host must have a certificate source; plain HTTP there has to be
// requested with mode "off".
func resolveTLSMode(cfg *config.Config) (TLSMode, error) {
	switch mode := strings.ToLower(cfg.TLS.Mode); mode {
	case "off":
		return TLSModeOff, nil
	case "acme":
		return TLSModeACME, nil
	case "manual":
		return TLSModeManual, nil
	case "auto", "":
	default:
		return "", fmt.Errorf("unknown TLS mode %q (want auto, acme, manual or off)", mode)
	}

	host := cfg.Server.Host
	switch {
	case config.IsLocalhost(host):
		return TLSModeOff, nil
	case cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "":
		return TLSModeManual, nil
	case acmeRequirements(cfg) == nil:
		return TLSModeACME, nil
	}
	return "", fmt.Errorf("no certificate source for %q: set tls-cert-file and tls-key-file, "+
		"tls-email for ACME, or tls-mode=off to serve plain HTTP", host)
}

// acmeRequirements reports why Let's Encrypt cannot issue for this setup.
func acmeRequirements(cfg *config.Config) error {
	host := cfg.Server.Host
	if config.IsLocalhost(host) || net.ParseIP(host) != nil {
		return fmt.Errorf("ACME needs a public domain name, got %q", host)
	}
	if cfg.TLS.Email == "" {
		return errors.New("ACME mode requires TLS_EMAIL to be set")
	}
	for _, port := range []int{80, 443} {
		if !isPortAvailable(port) {
			return fmt.Errorf("ACME mode requires port %d (port in use)", port)
		}
	}
	return nil
}

// isPortAvailable checks if a port is available for binding.
func isPortAvailable(port int) bool {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}

func setupACME(cfg *config.Config) (*TLSResult, error) {
	if cfg.Server.Port != 443 {
		slog.Warn("ACME mode listens on 443, ignoring configured port", "port", cfg.Server.Port)
	}

	cacheDir := filepath.Join(cfg.TLS.CertDir, "acme")
	if err := os.MkdirAll(cacheDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create ACME cert directory: %w", err)
	}

	manager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Email:      cfg.TLS.Email,
		Cache:      autocert.DirCache(cacheDir),
		HostPolicy: autocert.HostWhitelist(cfg.Server.Host),
	}
	tlsConfig := manager.TLSConfig()
	tlsConfig.MinVersion = tls.VersionTLS12

	slog.Info("TLS mode: acme", "host", cfg.Server.Host, "email", cfg.TLS.Email)
	return &TLSResult{
		Mode:        TLSModeACME,
		TLSConfig:   tlsConfig,
		HTTPHandler: manager.HTTPHandler(nil),
	}, nil
}

func setupManual(cfg *config.Config) (*TLSResult, error) {
	if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
		return nil, errors.New("manual TLS mode requires both cert-file and key-file")
	}

	cert, err := tls.LoadX509KeyPair(cfg.TLS.CertFile, cfg.TLS.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}

	slog.Info("TLS mode: manual", "cert", cfg.TLS.CertFile, "key", cfg.TLS.KeyFile)
	return &TLSResult{
		Mode: TLSModeManual,
		TLSConfig: &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		},
	}, nil
}
