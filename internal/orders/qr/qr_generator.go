package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"time"

	"github.com/skip2/go-qrcode"

	"studio-admin/internal/models"
)

// CheckInPayload is what the studio's door scanner decrypts when a
// customer shows up for a session.
type CheckInPayload struct {
	OrderID     string    `json:"orderId"`
	PlanID      string    `json:"planId"`
	Customer    string    `json:"customer"`
	BookingDate time.Time `json:"bookingDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	IssuedAt    time.Time `json:"issuedAt"`
}

type QRGenerator struct {
	secret []byte
}

func NewQRGenerator(secret string) *QRGenerator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &QRGenerator{secret: hashed[:]}
}

// GenerateCheckInCode renders an encrypted check-in QR code PNG for an
// order.
func (q *QRGenerator) GenerateCheckInCode(order models.Order) ([]byte, error) {
	payload := CheckInPayload{
		OrderID:     order.ID,
		PlanID:      order.PlanID,
		Customer:    order.User.Name,
		BookingDate: order.BookingDate,
		StartTime:   order.Slot.StartTime,
		EndTime:     order.Slot.EndTime,
		IssuedAt:    time.Now(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, q.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}
