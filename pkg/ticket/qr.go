package ticket

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prasetyow/event-registration-service/internal/service"
	qrcode "github.com/skip2/go-qrcode"
)

// QRGenerator implements service.TicketIssuer. Issued tickets are QR PNGs
// whose payload is the JSON-encoded service.TicketClaims; Decode parses a
// scanned payload back into claims.
type QRGenerator struct {
	outputDir string
}

func NewQRGenerator(outputDir string) *QRGenerator {
	return &QRGenerator{outputDir: outputDir}
}

func (g *QRGenerator) Issue(registrationID uint, registrationCode string) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create qr directory: %w", err)
	}

	payload, err := json.Marshal(service.TicketClaims{
		RegistrationID:   registrationID,
		RegistrationCode: registrationCode,
		IssuedAt:         time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal ticket claims: %w", err)
	}

	fileName := fmt.Sprintf("%s_%d.png", registrationCode, registrationID)
	if err := qrcode.WriteFile(string(payload), qrcode.High, 300, filepath.Join(g.outputDir, fileName)); err != nil {
		return "", fmt.Errorf("write qr image: %w", err)
	}

	return "/qrcodes/" + fileName, nil
}

func (g *QRGenerator) Decode(payload string) (service.TicketClaims, error) {
	var claims service.TicketClaims
	if err := json.Unmarshal([]byte(payload), &claims); err != nil {
		return claims, fmt.Errorf("parse ticket payload: %w", err)
	}
	if claims.RegistrationID == 0 || claims.RegistrationCode == "" || claims.IssuedAt.IsZero() {
		return claims, errors.New("incomplete ticket payload")
	}
	return claims, nil
}
