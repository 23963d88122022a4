package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns the card-number cryptography: it knows nothing about
// the network, the database or users. Its only job is to generate and
// protect keys.
//
// Scheme:
//
//	DEK     = GenerateDEK()                  (one per card)
//	Number' = Encrypt(number, DEK)           (stored in cards)
//	DEK'    = WrapKey(DEK, masterKey)        (stored in card_keys)
type KeyChainService interface {
	// GenerateDEK generates a random 32-byte data-encryption key.
	GenerateDEK() ([]byte, error)

	// WrapKey encrypts dek with kek using AES-GCM and returns the base64 form
	// of nonce || ciphertext.
	WrapKey(dek, kek []byte) (string, error)

	// UnwrapKey reverses WrapKey. It fails if kek is not the wrapping key.
	UnwrapKey(wrapped string, kek []byte) ([]byte, error)

	// Encrypt encrypts plaintext with key and returns the base64 form of
	// nonce || ciphertext.
	Encrypt(plaintext string, key []byte) (string, error)

	// Decrypt reverses Encrypt.
	Decrypt(encryptedB64 string, key []byte) (string, error)
}
