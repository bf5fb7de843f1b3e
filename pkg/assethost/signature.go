package assethost

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// Signature computes the pre-shared-secret digest the host requires on
// destroy calls: SHA-1 over "public_id=<id>&timestamp=<millis><secret>".
func Signature(publicID string, timestampMillis int64, secret string) string {
	payload := fmt.Sprintf("public_id=%s&timestamp=%d%s", publicID, timestampMillis, secret)
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}
