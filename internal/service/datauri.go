package service

import (
	"encoding/base64"
	"errors"
	"strings"
)

var errMalformedDataURL = errors.New("malformed data URL")

// encodeDataURL packs raw file bytes into a self-contained base64 data URL,
// the form photo records embed their image in.
func encodeDataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// decodeDataURL unpacks a base64 data URL back into its media type and bytes.
func decodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, errMalformedDataURL
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errMalformedDataURL
	}

	mediaType, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" {
		return "", nil, errMalformedDataURL
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errMalformedDataURL
	}

	return mediaType, data, nil
}
