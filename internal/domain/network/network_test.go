package network

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	require.Equal(t, Devnet, Parse(""))
	require.Equal(t, Devnet, Parse("unknown"))
	require.Equal(t, Mainnet, Parse("mainnet-beta"))
	require.Equal(t, Mainnet, Parse("mainnet"))
	require.Equal(t, Testnet, Parse(" TESTNET "))
}

func TestExplorerURL(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		"https://explorer.solana.com/address/So11111111111111111111111111111111111111112?cluster=devnet",
		Devnet.ExplorerURL(ExplorerAddress, "So11111111111111111111111111111111111111112"))

	require.Equal(t,
		"https://explorer.solana.com/tx/5sig?cluster=devnet",
		Devnet.ExplorerURL(ExplorerTx, "5sig"))

	// mainnet はクエリなし
	require.Equal(t,
		"https://explorer.solana.com/tx/5sig",
		Mainnet.ExplorerURL(ExplorerTx, "5sig"))

	require.Equal(t,
		"https://explorer.solana.com/address/abc?cluster=testnet",
		Testnet.ExplorerURL(ExplorerAddress, "abc"))
}

func TestRPCEndpoint(t *testing.T) {
	t.Parallel()

	require.Equal(t, "https://api.devnet.solana.com", Devnet.RPCEndpoint())
	require.Equal(t, "https://api.mainnet-beta.solana.com", Mainnet.RPCEndpoint())
	require.Equal(t, "https://api.testnet.solana.com", Testnet.RPCEndpoint())
}
