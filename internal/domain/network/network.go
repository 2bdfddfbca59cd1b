// internal/domain/network/network.go
package network

import "strings"

// Network selects which cluster the pipeline submits to. It affects only
// the RPC endpoint and the explorer URL template, never control flow.
type Network string

const (
	Devnet  Network = "devnet"
	Mainnet Network = "mainnet-beta"
	Testnet Network = "testnet"
)

// Parse maps a raw string onto a known network, defaulting to devnet.
func Parse(s string) Network {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Mainnet), "mainnet":
		return Mainnet
	case string(Testnet):
		return Testnet
	default:
		return Devnet
	}
}

// RPCEndpoint returns the public RPC endpoint for the network.
// 本番は有料 RPC に差し替えること（env で上書き可能、config 参照）。
func (n Network) RPCEndpoint() string {
	switch n {
	case Mainnet:
		return "https://api.mainnet-beta.solana.com"
	case Testnet:
		return "https://api.testnet.solana.com"
	default:
		return "https://api.devnet.solana.com"
	}
}

// ExplorerKind is the path segment of a Solana Explorer link.
type ExplorerKind string

const (
	ExplorerAddress ExplorerKind = "address"
	ExplorerTx      ExplorerKind = "tx"
)

const explorerBaseURL = "https://explorer.solana.com"

// ExplorerURL builds the block-explorer link for an address or signature.
// mainnet 以外は ?cluster= サフィックスを付ける。
func (n Network) ExplorerURL(kind ExplorerKind, value string) string {
	url := explorerBaseURL + "/" + string(kind) + "/" + value
	switch n {
	case Mainnet:
		return url
	case Testnet:
		return url + "?cluster=testnet"
	default:
		return url + "?cluster=devnet"
	}
}

// DisplayName is the human-readable cluster name.
func (n Network) DisplayName() string {
	switch n {
	case Mainnet:
		return "Mainnet Beta"
	case Testnet:
		return "Testnet"
	default:
		return "Devnet"
	}
}
