package alert

import (
	"encoding/hex"
	"encoding/json"

	scerrors "github.com/vale-lint/valecore/pkg/shared/errors"
)

// The hover surface is stateless between display and click, so a "fix" link
// carries the whole alert as an opaque token: compact JSON, hex-encoded.
// The encoding is part of the link contract and must stay reversible.

// EncodeToken serializes an alert into an opaque correlation token.
func EncodeToken(a Alert) (string, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}

// DecodeToken restores an alert from a correlation token produced by
// EncodeToken.
func DecodeToken(token string) (Alert, error) {
	data, err := hex.DecodeString(token)
	if err != nil {
		return Alert{}, scerrors.NewParseError(err)
	}
	var a Alert
	if err := json.Unmarshal(data, &a); err != nil {
		return Alert{}, scerrors.NewParseError(err)
	}
	return a, nil
}

// IsToken reports whether s looks like a correlation token rather than a file
// path or URL. Hex decoding is the authoritative check.
func IsToken(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
