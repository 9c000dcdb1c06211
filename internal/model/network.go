// Package model defines domain models shared by the header pipeline.
package model

import "fmt"

// Network identifies an HTMLCOIN network.
type Network string

var (
	Mainnet  Network = "main"
	Testnet  Network = "test"
	Regtest  Network = "regtest"
	Unittest Network = "unittest"
)

// ParseNetwork maps a flag or config value to a known network.
func ParseNetwork(value string) (Network, error) {
	switch n := Network(value); n {
	case Mainnet, Testnet, Regtest, Unittest:
		return n, nil
	case "mainnet":
		return Mainnet, nil
	case "testnet":
		return Testnet, nil
	default:
		return "", fmt.Errorf("unknown network %q", value)
	}
}
