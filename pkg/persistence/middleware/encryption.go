package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/waylinehq/wayline/pkg/domain"
	"github.com/waylinehq/wayline/pkg/ports"
)

// envelopeKey is the reserved payload slot carrying the ciphertext inside
// the opaque envelope context.
const envelopeKey = "__encrypted__"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey encrypts new data. Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys are old keys tried when decryption with the active key
	// fails, enabling zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.ContextStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts journey
// contexts with AES-GCM before they reach the underlying store.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.ContextStore) ports.ContextStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, journeyID string, jctx *domain.JourneyContext) error {
	plainText, err := jctx.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize journey context: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt journey context: %w", err)
	}

	// The stored context is an opaque envelope; waypoint data, errors and
	// history never reach the backend in the clear.
	envelope := domain.NewJourneyContext()
	envelope.Data[envelopeKey] = map[string]any{
		envelopeKey: base64.StdEncoding.EncodeToString(ciphertext),
	}
	envelope.History = nil

	return m.next.Save(ctx, journeyID, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, journeyID string) (*domain.JourneyContext, error) {
	envelope, err := m.next.Load(ctx, journeyID)
	if err != nil {
		return nil, err
	}

	slot, ok := envelope.Data[envelopeKey]
	if !ok {
		// With encryption configured, a plain context in the store is
		// either tampering or a broken migration. Fail secure.
		return nil, errors.New("journey context is missing encrypted data envelope")
	}
	encryptedStr, ok := slot[envelopeKey].(string)
	if !ok {
		return nil, errors.New("journey context envelope is malformed")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encryptedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt journey context: %w", err)
	}

	return domain.DeserializeJourneyContext(plainText)
}

func (m *encryptionMiddleware) Delete(ctx context.Context, journeyID string) error {
	return m.next.Delete(ctx, journeyID)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
