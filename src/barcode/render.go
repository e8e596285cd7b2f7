package barcode

import (
	"bytes"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/boombuler/barcode"
	"github.com/yeqown/go-qrcode"
)

const DEFAULT_BAR_HEIGHT = 50

const (
	CODE128_CONTENT_TYPE = "image/png"
	QR_CONTENT_TYPE      = "image/jpeg"
)

// RenderCode128 draws payload as a Code 128 symbol, one pixel per module and
// no caption, and returns it as PNG.
func RenderCode128(payload string, height int) ([]byte, error) {
	if payload == "" {
		return nil, ErrEmptyInput
	}
	if height <= 0 {
		height = DEFAULT_BAR_HEIGHT
	}
	bc, err := encodeCode128(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding code128: %w", err)
	}
	scaled, err := barcode.Scale(bc, bc.Bounds().Dx(), height)
	if err != nil {
		return nil, fmt.Errorf("scaling code128: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderQR draws payload as a QR code e-ticket. Each call stages the image
// in its own file under dir and removes it once read.
func RenderQR(payload, dir, name string) ([]byte, error) {
	if payload == "" {
		return nil, ErrEmptyInput
	}
	qrc, err := qrcode.New(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding qrcode: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(dir, name+"-*.jpeg")
	if err != nil {
		return nil, err
	}
	filepath := f.Name()
	f.Close()
	defer os.Remove(filepath)
	if err := qrc.Save(filepath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
		return nil, err
	}
	return os.ReadFile(filepath)
}
