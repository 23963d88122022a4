package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/crypto"
	"github.com/MKhiriev/go-bank-cards/internal/utils"
)

const (
	cardNumberGroups     = 4
	cardNumberGroupLimit = 10000
)

// cardSecurityService keeps card numbers encrypted under per-card keys and
// fingerprints them with an HMAC so that uniqueness can be checked without
// decrypting anything.
type cardSecurityService struct {
	keyChain  crypto.KeyChainService
	masterKey []byte
	hasher    *utils.Hasher
	random    io.Reader
}

func NewCardSecurityService(keyChain crypto.KeyChainService, cfg config.App) (CardSecurityService, error) {
	masterKey, err := base64.StdEncoding.DecodeString(cfg.CardMasterKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMasterKey, err)
	}
	switch len(masterKey) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: key must be 16, 24 or 32 bytes, got %d", ErrInvalidMasterKey, len(masterKey))
	}

	hmacKey, err := base64.StdEncoding.DecodeString(cfg.CardHMACKey)
	if err != nil || len(hmacKey) == 0 {
		return nil, ErrInvalidHMACKey
	}

	return &cardSecurityService{
		keyChain:  keyChain,
		masterKey: masterKey,
		hasher:    utils.NewHasher(hmacKey),
		random:    rand.Reader,
	}, nil
}

// GenerateNumber returns 16 random digits.
func (s *cardSecurityService) GenerateNumber() (string, error) {
	var sb strings.Builder
	sb.Grow(cardNumberGroups * 4)

	limit := big.NewInt(cardNumberGroupLimit)
	for i := 0; i < cardNumberGroups; i++ {
		n, err := rand.Int(s.random, limit)
		if err != nil {
			return "", fmt.Errorf("error generating card number: %w", err)
		}
		fmt.Fprintf(&sb, "%04d", n.Int64())
	}

	return sb.String(), nil
}

func (s *cardSecurityService) Hash(number string) string {
	return s.hasher.HashString(number)
}

func (s *cardSecurityService) Seal(number string) (string, string, error) {
	dek, err := s.keyChain.GenerateDEK()
	if err != nil {
		return "", "", fmt.Errorf("error generating card key: %w", err)
	}

	encryptedNumber, err := s.keyChain.Encrypt(number, dek)
	if err != nil {
		return "", "", fmt.Errorf("error encrypting card number: %w", err)
	}

	encryptedKey, err := s.keyChain.WrapKey(dek, s.masterKey)
	if err != nil {
		return "", "", fmt.Errorf("error wrapping card key: %w", err)
	}

	return encryptedNumber, encryptedKey, nil
}

func (s *cardSecurityService) Open(encryptedNumber, encryptedKey string) (string, error) {
	dek, err := s.keyChain.UnwrapKey(encryptedKey, s.masterKey)
	if err != nil {
		return "", fmt.Errorf("error unwrapping card key: %w", err)
	}

	number, err := s.keyChain.Decrypt(encryptedNumber, dek)
	if err != nil {
		return "", fmt.Errorf("error decrypting card number: %w", err)
	}

	return number, nil
}
