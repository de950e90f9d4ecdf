package payos

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// signPayload computes the HMAC-SHA256 checksum PayOS expects: the payload
// fields serialized as key=value pairs, sorted by key, joined with '&'.
func signPayload(checksumKey string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, fields[key]))
	}

	mac := hmac.New(sha256.New, []byte(checksumKey))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

func verifySignature(checksumKey string, fields map[string]string, signature string) bool {
	expected := signPayload(checksumKey, fields)
	return hmac.Equal([]byte(expected), []byte(signature))
}
