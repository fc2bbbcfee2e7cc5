// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args (without the program name)
// and returns the resulting config together with the positional arguments
// left after the last flag.
//
// Flags:
//
//	-a remote note service address in format [host]:[port]
//	-d SQLite database DSN
//	-kv-dir fallback key-value directory
//	-redis-addr fallback Redis address
//	-request-timeout remote request timeout (e.g., "10s")
//	-session-url session lookup endpoint
//	-token bearer token carrying the identity
//	-sync-interval background sync interval (e.g., "5m")
//	-c/-config json file path with configs
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	fs := flag.NewFlagSet("smart-notes", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var remoteAddress NetAddress
	var databaseDSN string
	var kvDir string
	var redisAddr string
	var requestTimeout time.Duration
	var sessionURL string
	var token string
	var syncInterval time.Duration
	var jsonConfigPath string

	fs.Var(&remoteAddress, "a", "Remote note service address host:port")
	fs.StringVar(&databaseDSN, "d", "", "SQLite database DSN")
	fs.StringVar(&kvDir, "kv-dir", "", "Fallback key-value directory")
	fs.StringVar(&redisAddr, "redis-addr", "", "Fallback Redis address host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 10s)")
	fs.StringVar(&sessionURL, "session-url", "", "Session lookup endpoint")
	fs.StringVar(&token, "token", "", "Bearer token carrying the identity")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := &StructuredConfig{
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
			KV: KV{Dir: kvDir, RedisAddr: redisAddr},
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Session: Session{
			URL:   sessionURL,
			Token: token,
		},
		Workers:      Workers{SyncInterval: syncInterval},
		JSONFilePath: jsonConfigPath,
	}

	return cfg, fs.Args(), nil
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when neither part is set.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
