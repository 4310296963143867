package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ledgerly/ledgerly-backend/internal/domain"
	"github.com/ledgerly/ledgerly-backend/internal/repository/storage"
	"github.com/ledgerly/ledgerly-backend/internal/util"
)

const (
	// MaxReceiptBytes bounds the decoded size of a stored receipt
	MaxReceiptBytes = 5 * 1024 * 1024
	// MaxReceiptWidth is the width receipts are downscaled to on intake
	MaxReceiptWidth = 1280
	// ReceiptJPEGQuality is the re-encode quality for downscaled receipts
	ReceiptJPEGQuality = 85
)

// ReceiptStats aggregates the stored receipt blobs of a ledger
type ReceiptStats struct {
	Count      int    `json:"count"`
	TotalBytes int64  `json:"totalBytes"`
	TotalSize  string `json:"totalSize"`
}

// ClearResult reports a bulk receipt clear
type ClearResult struct {
	Cleared  int64 `json:"cleared"`
	Archived int   `json:"archived"`
}

// ReceiptService handles receipt size accounting, normalization and
// bulk clearing
type ReceiptService struct {
	transactionRepo domain.TransactionRepository
	access          *AccessService
	archive         storage.ReceiptArchive
	activity        domain.ActivitySink
}

// NewReceiptService creates a new ReceiptService. archive may be nil
// when no blob storage is configured.
func NewReceiptService(transactionRepo domain.TransactionRepository, access *AccessService, archive storage.ReceiptArchive, activity domain.ActivitySink) *ReceiptService {
	return &ReceiptService{
		transactionRepo: transactionRepo,
		access:          access,
		archive:         archive,
		activity:        activity,
	}
}

// GetStats computes the aggregate stored byte size of a ledger's
// receipts. Any participant may read.
func (s *ReceiptService) GetStats(userID uuid.UUID, ledgerID int32) (*ReceiptStats, error) {
	access, err := s.access.Load(ledgerID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireRead(userID); err != nil {
		return nil, err
	}

	receipts, err := s.transactionRepo.GetReceipts(ledgerID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, receipt := range receipts {
		total += util.Base64Size(receipt)
	}
	return &ReceiptStats{
		Count:      len(receipts),
		TotalBytes: total,
		TotalSize:  util.FormatFileSize(total),
	}, nil
}

// ClearReceipts wipes all receipt blobs of a ledger. Owner only. When
// an archive backend is configured the blobs are copied there first,
// best-effort: archive failures are logged and do not block clearing.
func (s *ReceiptService) ClearReceipts(ctx context.Context, userID uuid.UUID, ledgerID int32) (*ClearResult, error) {
	access, err := s.access.Load(ledgerID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(userID); err != nil {
		return nil, err
	}

	result := &ClearResult{}
	if s.archive != nil {
		receipts, err := s.transactionRepo.GetReceipts(ledgerID)
		if err != nil {
			return nil, err
		}
		result.Archived = s.archiveReceipts(ctx, ledgerID, receipts)
	}

	cleared, err := s.transactionRepo.ClearReceipts(ledgerID)
	if err != nil {
		return nil, err
	}
	result.Cleared = cleared

	s.activity.Record(ctx, &domain.ActivityLogEntry{
		LedgerID:   ledgerID,
		UserID:     userID,
		Action:     domain.ActivityClear,
		EntityType: "receipt",
		Message:    activityMessage(domain.ActivityClear, "receipt", fmt.Sprintf("%d receipts cleared", cleared)),
	})

	return result, nil
}

func (s *ReceiptService) archiveReceipts(ctx context.Context, ledgerID int32, receipts map[int32]string) int {
	archived := 0
	for txID, receipt := range receipts {
		payload, contentType, err := decodeDataURI(receipt)
		if err != nil {
			log.Debug().Err(err).Int32("transaction_id", txID).Msg("Skipping unparseable receipt")
			continue
		}
		objectPath := fmt.Sprintf("%d/%d_%s", ledgerID, txID, time.Now().UTC().Format("20060102T150405"))
		if err := s.archive.Archive(ctx, objectPath, payload, contentType); err != nil {
			log.Warn().Err(err).Int32("transaction_id", txID).Msg("Failed to archive receipt")
			continue
		}
		archived++
	}
	return archived
}

// NormalizeReceipt validates a data-URI receipt and downscales wide
// images to keep stored blobs bounded. Returns the payload to store.
func NormalizeReceipt(dataURI string) (string, error) {
	if dataURI == "" {
		return "", nil
	}

	payload, _, err := decodeDataURI(dataURI)
	if err != nil {
		return "", domain.ErrReceiptInvalid
	}
	if len(payload) > MaxReceiptBytes {
		return "", domain.ErrReceiptTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(payload))
	if err != nil {
		return "", domain.ErrReceiptInvalid
	}

	if img.Bounds().Dx() <= MaxReceiptWidth {
		return dataURI, nil
	}

	resized := imaging.Resize(img, MaxReceiptWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(ReceiptJPEGQuality)); err != nil {
		return "", domain.ErrReceiptInvalid
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// decodeDataURI splits a base-64 data URI into payload bytes and MIME type
func decodeDataURI(dataURI string) ([]byte, string, error) {
	contentType := "application/octet-stream"
	b64 := dataURI
	if strings.HasPrefix(dataURI, "data:") {
		comma := strings.IndexByte(dataURI, ',')
		if comma < 0 {
			return nil, "", domain.ErrReceiptInvalid
		}
		meta := dataURI[len("data:"):comma]
		if semi := strings.IndexByte(meta, ';'); semi >= 0 {
			meta = meta[:semi]
		}
		if meta != "" {
			contentType = meta
		}
		b64 = dataURI[comma+1:]
	}

	payload, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", domain.ErrReceiptInvalid
	}
	return payload, contentType, nil
}
