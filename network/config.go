package network

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Role defines the TCP topology role
type Role uint8

const (
	RoleNone Role = iota // Network disabled
	RoleHost             // Accepts peers and relays between them
	RolePeer             // Connects to a host
)

// String returns the flag spelling of the role
func (r Role) String() string {
	switch r {
	case RoleHost:
		return "host"
	case RolePeer:
		return "peer"
	default:
		return "none"
	}
}

// ParseRole maps a flag value onto a Role
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "local":
		return RoleNone, nil
	case "host":
		return RoleHost, nil
	case "peer":
		return RolePeer, nil
	}
	return RoleNone, errors.Errorf("unknown network role %q", s)
}

// Config holds network configuration
type Config struct {
	// Role determines connection behavior
	Role Role

	// Address to bind (host) or connect to (peer)
	Address string

	// TLS configuration (nil = plaintext)
	TLS *tls.Config

	// Connection limits
	MaxPeers int

	// Timing
	ConnectTimeout    time.Duration
	HeartbeatInterval time.Duration
	DisconnectTimeout time.Duration

	// Queue sizes
	SendQueueSize int
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Role:              RoleNone,
		Address:           ":7777",
		MaxPeers:          16,
		ConnectTimeout:    5 * time.Second,
		HeartbeatInterval: 2 * time.Second,
		DisconnectTimeout: 10 * time.Second,
		SendQueueSize:     256,
	}
}

// DebugConfig returns config with TLS disabled for local testing
func DebugConfig(role Role, addr string) *Config {
	cfg := DefaultConfig()
	cfg.Role = role
	cfg.Address = addr
	return cfg
}
