package listing

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

func nowUTCString() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func cacheTranslationKey(language string, transcript string) string {
	sum := sha256.Sum256([]byte(language + "\n" + transcript))
	return "translation:" + hex.EncodeToString(sum[:])
}
