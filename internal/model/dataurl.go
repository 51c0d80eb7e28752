package model

import (
	"encoding/base64"
	"fmt"
	"regexp"
)

// dataURLRE matches base64 data URLs. Every read path extracts the MIME
// type and payload through this single pattern so PDF and image
// materials survive store round trips byte for byte.
var dataURLRE = regexp.MustCompile(`^data:([^;,]+);base64,(.+)$`)

// EncodeDataURL packs raw bytes into a base64 data URL.
func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a base64 data URL into its MIME type and payload.
func DecodeDataURL(url string) (mimeType string, data []byte, err error) {
	m := dataURLRE.FindStringSubmatch(url)
	if m == nil {
		return "", nil, fmt.Errorf("not a base64 data URL")
	}
	data, err = base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL payload: %w", err)
	}
	return m[1], data, nil
}

// IsDataURL reports whether url looks like a base64 data URL.
func IsDataURL(url string) bool {
	return dataURLRE.MatchString(url)
}
