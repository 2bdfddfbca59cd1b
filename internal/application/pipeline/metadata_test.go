package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	tokendom "solanaforge/internal/domain/token"
)

func TestBuildMetadataDocument(t *testing.T) {
	t.Parallel()

	req := tokendom.NewRequest()
	req.Name = "Sol Summer"
	req.Symbol = "SUMR"
	req.Description = "A seasonal token"
	req.Image = &tokendom.Asset{FileName: "s.jpg", ContentType: "image/jpeg"}
	req.Social = tokendom.SocialLinks{
		Website: "https://solsummer.xyz",
		Twitter: "@solsummer",
	}
	req.Tags = []string{"meme", "summer"}

	doc := BuildMetadataDocument(req, "https://gateway.irys.xyz/img")

	require.Equal(t, "Sol Summer", doc.Name)
	require.Equal(t, "SUMR", doc.Symbol)
	require.Equal(t, "https://gateway.irys.xyz/img", doc.Image)
	require.Equal(t, "https://solsummer.xyz", doc.ExternalURL)
	require.Equal(t, "image", doc.Properties.Category)
	require.Len(t, doc.Properties.Files, 1)
	require.Equal(t, "image/jpeg", doc.Properties.Files[0].Type)
	require.Equal(t, "https://gateway.irys.xyz/img", doc.Properties.Files[0].URI)
	require.Equal(t, []string{"meme", "summer"}, doc.Extensions.Tags)

	// creatorAddress 無し → creators 無し
	require.Empty(t, doc.Properties.Creators)
}

func TestBuildMetadataDocument_Creators(t *testing.T) {
	t.Parallel()

	req := tokendom.NewRequest()
	req.Name = "X"
	req.Symbol = "X"
	req.CreatorAddress = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"

	doc := BuildMetadataDocument(req, "img")
	require.Len(t, doc.Properties.Creators, 1)
	require.Equal(t, req.CreatorAddress, doc.Properties.Creators[0].Address)
	require.Equal(t, 100, doc.Properties.Creators[0].Share)
}

// ContentType 未指定は image/png にフォールバック。
func TestBuildMetadataDocument_DefaultContentType(t *testing.T) {
	t.Parallel()

	req := tokendom.NewRequest()
	req.Image = &tokendom.Asset{FileName: "s"}

	doc := BuildMetadataDocument(req, "img")
	require.Equal(t, "image/png", doc.Properties.Files[0].Type)
}

func TestEncodeMetadata_OmitsEmptyExtensions(t *testing.T) {
	t.Parallel()

	req := tokendom.NewRequest()
	req.Name = "Bare"
	req.Symbol = "BARE"

	raw, err := EncodeMetadata(BuildMetadataDocument(req, "img"))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))

	require.NotContains(t, m, "description")
	require.NotContains(t, m, "external_url")

	ext, ok := m["extensions"].(map[string]any)
	require.True(t, ok)
	require.NotContains(t, ext, "twitter")
	require.NotContains(t, ext, "tags")
}
