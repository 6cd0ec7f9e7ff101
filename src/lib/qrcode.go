package lib

import (
	"log"
	"os"
	"path/filepath"

	"github.com/yeqown/go-qrcode"
)

// WriteQRCode renders text as a JPEG QR code at dest, creating parent dirs.
func WriteQRCode(text, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	qrc, err := qrcode.New(text)
	if err != nil {
		return err
	}
	if err := qrc.Save(dest); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", dest, err.Error())
		return err
	}
	return nil
}
