package common

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log"
	"ticketpro/src/barcode"
	"ticketpro/src/models"
	"time"

	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
)

const (
	FORMAT_CODE128 = "code128"
	FORMAT_QR      = "qr"
)

const ASSET_URL_TTL = 2 * time.Hour

var ErrAssetsDisabled = errors.New("barcode sharing is not configured")

var ErrUnknownFormat = errors.New("unknown barcode format")

type AssetStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// BarcodeAssets renders ticket barcodes and publishes them as shareable
// links. Links are cached in Redis while the presigned URL is valid.
type BarcodeAssets struct {
	Assets  AssetStore
	Cache   *redis.Client
	TempDir string
}

func (a *BarcodeAssets) Render(ticket *models.Ticket, format string) ([]byte, string, error) {
	payload, err := barcode.Encode(ticket)
	if err != nil {
		return nil, "", err
	}
	switch format {
	case "", FORMAT_CODE128:
		data, err := barcode.RenderCode128(payload, barcode.DEFAULT_BAR_HEIGHT)
		return data, barcode.CODE128_CONTENT_TYPE, err
	case FORMAT_QR:
		data, err := barcode.RenderQR(payload, a.TempDir, slug.Make(ticket.SerialNumber))
		return data, barcode.QR_CONTENT_TYPE, err
	}
	return nil, "", ErrUnknownFormat
}

// AssetKey names the object for a ticket's barcode. The payload digest is
// part of the key so an updated ticket gets a fresh image.
func AssetKey(ticket *models.Ticket, format string) (string, error) {
	if format == "" {
		format = FORMAT_CODE128
	}
	payload, err := barcode.Encode(ticket)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(payload))
	ext := "png"
	if format == FORMAT_QR {
		ext = "jpeg"
	}
	return fmt.Sprintf("barcodes/%s.%s", slug.Make(fmt.Sprintf("%s %s %x", ticket.SerialNumber, format, sum[:4])), ext), nil
}

func cacheKey(assetKey string) string {
	return fmt.Sprintf("ticketpro_barcode:%s", assetKey)
}

func (a *BarcodeAssets) Publish(ctx context.Context, ticket *models.Ticket, format string) (string, error) {
	if a.Assets == nil {
		return "", ErrAssetsDisabled
	}
	key, err := AssetKey(ticket, format)
	if err != nil {
		return "", err
	}
	if a.Cache != nil {
		url, err := a.Cache.Get(ctx, cacheKey(key)).Result()
		if err == nil {
			return url, nil
		}
		if !errors.Is(err, redis.Nil) {
			log.Printf("[redis] Error reading barcode cache: %s\n", err.Error())
		}
	}
	data, contentType, err := a.Render(ticket, format)
	if err != nil {
		return "", err
	}
	url, err := a.Assets.Put(ctx, key, contentType, data)
	if err != nil {
		log.Printf("Error uploading asset: %s\n", err.Error())
		return "", err
	}
	if a.Cache != nil {
		if err := a.Cache.SetEx(ctx, cacheKey(key), url, ASSET_URL_TTL).Err(); err != nil {
			log.Printf("[redis] Error caching barcode url: %s\n", err.Error())
		}
	}
	return url, nil
}
