package common

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"
	"ticketpro/src/store"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAssetStore struct {
	puts map[string][]byte
}

func (f *fakeAssetStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	f.puts[key] = data
	return "https://assets.example.com/" + key, nil
}

func TestAssetKey(t *testing.T) {
	ticket := store.SeedTickets()[0]

	key, err := AssetKey(&ticket, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "barcodes/tkt123456-code128-"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	qrKey, err := AssetKey(&ticket, FORMAT_QR)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(qrKey, ".jpeg"))

	ticket.SeatNumber = "1A"
	same, err := AssetKey(&ticket, "")
	require.NoError(t, err)
	assert.Equal(t, key, same)

	ticket.Status = "CANCELLED"
	changed, err := AssetKey(&ticket, "")
	require.NoError(t, err)
	assert.NotEqual(t, key, changed)
}

func TestRender(t *testing.T) {
	ticket := store.SeedTickets()[0]
	a := &BarcodeAssets{TempDir: t.TempDir()}

	data, contentType, err := a.Render(&ticket, FORMAT_CODE128)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)

	data, contentType, err = a.Render(&ticket, FORMAT_QR)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.NotEmpty(t, data)

	_, _, err = a.Render(&ticket, "pdf417")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestPublishCachesURL(t *testing.T) {
	ticket := store.SeedTickets()[0]
	rd, mock := redismock.NewClientMock()
	assets := &fakeAssetStore{puts: map[string][]byte{}}
	a := &BarcodeAssets{Assets: assets, Cache: rd, TempDir: t.TempDir()}
	ctx := context.Background()

	key, err := AssetKey(&ticket, FORMAT_CODE128)
	require.NoError(t, err)
	url := "https://assets.example.com/" + key

	mock.ExpectGet("ticketpro_barcode:" + key).RedisNil()
	mock.ExpectSetEx("ticketpro_barcode:"+key, url, ASSET_URL_TTL).SetVal("OK")
	got, err := a.Publish(ctx, &ticket, FORMAT_CODE128)
	require.NoError(t, err)
	assert.Equal(t, url, got)
	assert.Len(t, assets.puts, 1)

	mock.ExpectGet("ticketpro_barcode:" + key).SetVal(url)
	got, err = a.Publish(ctx, &ticket, FORMAT_CODE128)
	require.NoError(t, err)
	assert.Equal(t, url, got)
	assert.Len(t, assets.puts, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishDisabled(t *testing.T) {
	ticket := store.SeedTickets()[0]
	a := &BarcodeAssets{}
	_, err := a.Publish(context.Background(), &ticket, "")
	assert.ErrorIs(t, err, ErrAssetsDisabled)
}
