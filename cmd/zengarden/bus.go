package main

import (
	"log"
	"strings"

	"github.com/pkg/errors"

	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/network"
	"github.com/lixenwraith/zengarden/network/ws"
)

// openBus connects the sync channel for the configured role
// Local play returns a nil bus
func openBus(nc config.NetworkConfig, logger *log.Logger) (network.Bus, error) {
	switch strings.ToLower(strings.TrimSpace(nc.Role)) {
	case "", "none", "local":
		return nil, nil
	case "ws":
		c, err := ws.Dial(nc.RelayURL, logger)
		if err != nil {
			return nil, errors.Wrapf(err, "dial relay %s", nc.RelayURL)
		}
		return c, nil
	}

	role, err := network.ParseRole(nc.Role)
	if err != nil {
		return nil, err
	}
	bus, err := network.NewTCPBus(network.DebugConfig(role, nc.Address), logger)
	if err != nil {
		return nil, errors.Wrapf(err, "start %s bus on %s", role, nc.Address)
	}
	return bus, nil
}

// applyFlags overrides the configured network with non-empty flag values
// For the ws role addr is the relay URL
func applyFlags(nc *config.NetworkConfig, role, addr string) {
	if role != "" {
		nc.Role = role
	}
	if addr == "" {
		return
	}
	if strings.EqualFold(nc.Role, "ws") {
		nc.RelayURL = addr
	} else {
		nc.Address = addr
	}
}
