// internal/application/pipeline/orchestrator.go
package pipeline

import (
	"context"
	"log"
	"strings"
	"time"

	feedom "solanaforge/internal/domain/fee"
	netdom "solanaforge/internal/domain/network"
	tokendom "solanaforge/internal/domain/token"
	walletdom "solanaforge/internal/domain/wallet"
)

// ============================================================
// Ports
// ============================================================

// AssetStore uploads a binary asset and returns a stable URL.
type AssetStore interface {
	UploadAsset(ctx context.Context, asset tokendom.Asset) (string, error)
}

// MetadataStore uploads a JSON document and returns a stable URL.
type MetadataStore interface {
	UploadMetadata(ctx context.Context, doc []byte) (string, error)
}

// TransactionSubmitter is the builder/submitter boundary: it turns the
// snapshot + metadata URL into a signed, confirmed on-chain artifact via the
// wallet session. チェーン固有のエンコードはこの境界の向こう側。
type TransactionSubmitter interface {
	BuildAndSubmit(
		ctx context.Context,
		desc walletdom.UnsignedTxDescriptor,
		session walletdom.SessionPort,
	) (walletdom.SubmitResult, error)
}

// ProgressFunc receives a human-readable status string before each stage.
// Advisory only; never affects control flow.
type ProgressFunc func(status string)

// ============================================================
// Run
// ============================================================

// Stage is the position of a run inside the four-stage pipeline.
type Stage string

const (
	StageAssetUpload    Stage = "asset_upload"
	StageMetadataUpload Stage = "metadata_upload"
	StageSubmit         Stage = "submit"
	StageDone           Stage = "done"
)

// Run is one execution instance over a frozen snapshot.
type Run struct {
	Stage    Stage                    `json:"stage"`
	Snapshot tokendom.CreationRequest `json:"snapshot"`
	Quote    feedom.Quote             `json:"quote"`
	Network  netdom.Network           `json:"network"`
	Result   *tokendom.CreationResult `json:"result,omitempty"`
	Err      error                    `json:"-"`
}

// ============================================================
// Orchestrator
// ============================================================

// Orchestrator sequences the four remote stages. It does not retry and
// exposes no mid-run cancellation: a started run ends in success or one
// typed failure.
type Orchestrator struct {
	assets    AssetStore
	metadata  MetadataStore
	submitter TransactionSubmitter
	network   netdom.Network
	progress  ProgressFunc
}

func NewOrchestrator(
	assets AssetStore,
	metadata MetadataStore,
	submitter TransactionSubmitter,
	network netdom.Network,
	progress ProgressFunc,
) *Orchestrator {
	return &Orchestrator{
		assets:    assets,
		metadata:  metadata,
		submitter: submitter,
		network:   network,
		progress:  progress,
	}
}

func (o *Orchestrator) emit(status string) {
	if o == nil || o.progress == nil {
		return
	}
	o.progress(status)
}

// Execute drives a run to its terminal state. Each stage's output feeds the
// next, so the order is fixed: asset → metadata → sign+submit.
// 失敗は §7 の typed error に必ず畳む。途中結果の再利用はしない。
func (o *Orchestrator) Execute(
	ctx context.Context,
	run *Run,
	session walletdom.SessionPort,
) (*tokendom.CreationResult, error) {
	start := time.Now()

	// 1) Asset upload
	run.Stage = StageAssetUpload
	o.emit("Uploading image to storage...")

	if run.Snapshot.Image == nil {
		// submit gate で弾かれている前提だが、二重に守る
		run.Err = tokendom.WrapAssetUpload(nil)
		return nil, run.Err
	}

	imageURL, err := o.assets.UploadAsset(ctx, *run.Snapshot.Image)
	if err != nil || strings.TrimSpace(imageURL) == "" {
		log.Printf("[pipeline] asset upload failed err=%v elapsed=%s", err, time.Since(start))
		run.Err = tokendom.WrapAssetUpload(err)
		return nil, run.Err
	}
	log.Printf("[pipeline] asset uploaded url=%s", imageURL)

	// 2) Metadata upload
	run.Stage = StageMetadataUpload
	o.emit("Uploading metadata JSON...")

	doc := BuildMetadataDocument(run.Snapshot, imageURL)
	raw, err := EncodeMetadata(doc)
	if err != nil {
		run.Err = tokendom.WrapMetadataUpload(err)
		return nil, run.Err
	}

	metadataURL, err := o.metadata.UploadMetadata(ctx, raw)
	if err != nil || strings.TrimSpace(metadataURL) == "" {
		log.Printf("[pipeline] metadata upload failed err=%v elapsed=%s", err, time.Since(start))
		run.Err = tokendom.WrapMetadataUpload(err)
		return nil, run.Err
	}
	log.Printf("[pipeline] metadata uploaded url=%s", metadataURL)

	// 3) Build + sign + submit
	run.Stage = StageSubmit
	o.emit("Building transaction & awaiting signature...")

	desc := walletdom.UnsignedTxDescriptor{
		Network:     string(run.Network),
		Request:     run.Snapshot,
		MetadataURL: metadataURL,
		FeeTotal:    run.Quote.Total,
	}

	res, err := o.submitter.BuildAndSubmit(ctx, desc, session)
	if err != nil {
		log.Printf("[pipeline] submit failed err=%v elapsed=%s", err, time.Since(start))
		if walletdom.IsUserRejected(err) {
			run.Err = tokendom.ErrSignatureRejected
		} else {
			run.Err = tokendom.WrapSubmission(err)
		}
		return nil, run.Err
	}

	// 成功条件: mintAddress と signature の両方が非空。欠けは SubmissionFailed。
	mintAddr := strings.TrimSpace(res.MintAddress)
	sig := strings.TrimSpace(res.Signature)
	if mintAddr == "" || sig == "" {
		log.Printf("[pipeline] submit returned incomplete result mintAddress=%q signature=%q", mintAddr, sig)
		run.Err = tokendom.WrapSubmission(nil)
		return nil, run.Err
	}

	// 4) Completion
	run.Stage = StageDone
	run.Result = &tokendom.CreationResult{
		MintAddress: mintAddr,
		Signature:   sig,
		MetadataURL: metadataURL,
		ImageURL:    imageURL,
	}

	log.Printf(
		"[pipeline] run done network=%s mintAddress=%s signature=%s elapsed=%s",
		run.Network, mintAddr, sig, time.Since(start),
	)
	return run.Result, nil
}
