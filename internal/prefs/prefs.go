// Package prefs stores user-uploaded images that replace page placeholders.
// Values are image data URLs keyed by the slot they fill.
package prefs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"Stratowave/internal/config"
)

// LogoKey is the slot for the custom header logo
const LogoKey = "customLogo"

// MaxImageSize bounds the length of a stored data URL
const MaxImageSize = 4 << 20

// InvalidImageMessage is shown when an upload is rejected
const InvalidImageMessage = "Please select a valid image file."

var (
	// ErrInvalidKey is returned for keys outside [A-Za-z0-9-]{1,64}
	ErrInvalidKey = errors.New("invalid preference key")
	// ErrInvalidImage is returned when a value is not an accepted image data URL
	ErrInvalidImage = errors.New(InvalidImageMessage)
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

var imageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/svg+xml"}

// Store is a persistent key-value area for preferences
type Store interface {
	// Get returns the value for key; ok is false when nothing is stored
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// ValidateKey checks that key names a preference slot
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// ValidateImage accepts base64 data URLs of the supported image types
func ValidateImage(value string) error {
	if len(value) > MaxImageSize {
		return fmt.Errorf("%w: %d bytes exceeds limit", ErrInvalidImage, len(value))
	}

	header, payload, ok := strings.Cut(value, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return ErrInvalidImage
	}

	mediaType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	accepted := false
	for _, t := range imageTypes {
		if mediaType == t {
			accepted = true
			break
		}
	}
	if !accepted {
		return fmt.Errorf("%w: unsupported type %q", ErrInvalidImage, mediaType)
	}

	if payload == "" {
		return ErrInvalidImage
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return nil
}

// Open creates the store selected by cfg
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.StoreSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case config.StoreRedis:
		return NewRedisStore(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
