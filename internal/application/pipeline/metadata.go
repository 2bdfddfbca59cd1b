// internal/application/pipeline/metadata.go
package pipeline

import (
	"encoding/json"
	"strings"

	tokendom "solanaforge/internal/domain/token"
)

// ============================================================
// Canonical metadata document (Metaplex off-chain JSON)
// ============================================================

type metadataFile struct {
	URI  string `json:"uri"`
	Type string `json:"type"`
}

type metadataCreator struct {
	Address string `json:"address"`
	Share   int    `json:"share"`
}

type metadataProperties struct {
	Files    []metadataFile    `json:"files"`
	Category string            `json:"category"`
	Creators []metadataCreator `json:"creators,omitempty"`
}

type metadataExtensions struct {
	Twitter  string   `json:"twitter,omitempty"`
	Telegram string   `json:"telegram,omitempty"`
	Discord  string   `json:"discord,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// MetadataDocument is the JSON uploaded to the metadata store and referenced
// by the on-chain metadata URI.
type MetadataDocument struct {
	Name        string             `json:"name"`
	Symbol      string             `json:"symbol"`
	Description string             `json:"description,omitempty"`
	Image       string             `json:"image"`
	ExternalURL string             `json:"external_url,omitempty"`
	Properties  metadataProperties `json:"properties"`
	Extensions  metadataExtensions `json:"extensions"`
}

// BuildMetadataDocument assembles the canonical document for a snapshot and
// an already-uploaded image URL.
//
// creators は creatorAddress があるときだけ（share=100 の 1 件）。
func BuildMetadataDocument(req tokendom.CreationRequest, imageURL string) MetadataDocument {
	contentType := "image/png"
	if req.Image != nil && strings.TrimSpace(req.Image.ContentType) != "" {
		contentType = strings.TrimSpace(req.Image.ContentType)
	}

	doc := MetadataDocument{
		Name:        req.Name,
		Symbol:      req.Symbol,
		Description: req.Description,
		Image:       imageURL,
		ExternalURL: req.Social.Website,
		Properties: metadataProperties{
			Files:    []metadataFile{{URI: imageURL, Type: contentType}},
			Category: "image",
		},
		Extensions: metadataExtensions{
			Twitter:  req.Social.Twitter,
			Telegram: req.Social.Telegram,
			Discord:  req.Social.Discord,
			Tags:     req.Tags,
		},
	}

	if addr := strings.TrimSpace(req.CreatorAddress); addr != "" {
		doc.Properties.Creators = []metadataCreator{{Address: addr, Share: 100}}
	}

	return doc
}

// EncodeMetadata marshals the document for upload.
func EncodeMetadata(doc MetadataDocument) ([]byte, error) {
	return json.Marshal(doc)
}
