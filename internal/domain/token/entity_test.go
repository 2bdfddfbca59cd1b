package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validRequest() CreationRequest {
	req := NewRequest()
	req.Name = "Sol Summer"
	req.Symbol = "SUMR"
	req.Image = &Asset{FileName: "summer.png", ContentType: "image/png", Data: []byte{0x89, 0x50}}
	return req
}

func TestNewRequest_Defaults(t *testing.T) {
	t.Parallel()

	req := NewRequest()
	require.Equal(t, 9, req.Decimals)
	require.Equal(t, uint64(1_000_000), req.InitialSupply)
	require.True(t, req.FreezeAuthority) // 権限保持がデフォルト
	require.False(t, req.RevokeMint)
	require.False(t, req.Immutable)
}

func TestValidateBasic(t *testing.T) {
	t.Parallel()

	require.NoError(t, validRequest().ValidateBasic())

	noName := validRequest()
	noName.Name = "  "
	require.ErrorIs(t, noName.ValidateBasic(), ErrValidationFailed)

	noSymbol := validRequest()
	noSymbol.Symbol = ""
	require.ErrorIs(t, noSymbol.ValidateBasic(), ErrValidationFailed)

	badDecimals := validRequest()
	badDecimals.Decimals = 19
	require.ErrorIs(t, badDecimals.ValidateBasic(), ErrValidationFailed)

	zeroSupply := validRequest()
	zeroSupply.InitialSupply = 0
	require.ErrorIs(t, zeroSupply.ValidateBasic(), ErrValidationFailed)

	noImage := validRequest()
	noImage.Image = nil
	require.ErrorIs(t, noImage.ValidateBasic(), ErrValidationFailed)
}

func TestValidateAdvanced_AlwaysPasses(t *testing.T) {
	t.Parallel()

	req := NewRequest() // advanced は全部未入力でも通る
	require.NoError(t, req.ValidateAdvanced())
}

func TestApply_PartialPatch(t *testing.T) {
	t.Parallel()

	req := NewRequest()
	name := "Moon Cat"
	dec := 6
	tw := " @mooncat "
	req.Apply(Patch{Name: &name, Decimals: &dec, Twitter: &tw})

	require.Equal(t, "Moon Cat", req.Name)
	require.Equal(t, 6, req.Decimals)
	require.Equal(t, "@mooncat", req.Social.Twitter)
	// 触っていないフィールドはデフォルトのまま
	require.Equal(t, uint64(1_000_000), req.InitialSupply)
}

func TestClone_Isolation(t *testing.T) {
	t.Parallel()

	req := validRequest()
	req.Tags = []string{"summer", "meme"}

	snap := req.Clone()

	// ライブ側を書き換えてもスナップショットは不変
	req.Name = "changed"
	req.Image.Data[0] = 0xFF
	req.Tags[0] = "winter"

	require.Equal(t, "Sol Summer", snap.Name)
	require.Equal(t, byte(0x89), snap.Image.Data[0])
	require.Equal(t, "summer", snap.Tags[0])
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	got := NormalizeTags([]string{" meme ", "", "meme", "defi", "  "})
	require.Equal(t, []string{"meme", "defi"}, got)
}

func TestIsValidBase58Pubkey(t *testing.T) {
	t.Parallel()

	require.True(t, IsValidBase58Pubkey("7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"))
	require.False(t, IsValidBase58Pubkey(""))
	require.False(t, IsValidBase58Pubkey("short"))
	// 0, O, I, l は base58 に含まれない
	require.False(t, IsValidBase58Pubkey("0xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"))
}
