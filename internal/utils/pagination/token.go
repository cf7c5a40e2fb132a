package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// transactionTokenKind tags keyset tokens over the transactions table.
const transactionTokenKind = "txn"

// EncodeIDToken creates an opaque token that resumes a listing at id.
func EncodeIDToken(nextID int64) string {
	return EncodeMultiFieldToken(transactionTokenKind, strconv.FormatInt(nextID, 10))
}

// DecodeIDToken parses a token produced by EncodeIDToken.
func DecodeIDToken(token string) (int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 || parts[0] != transactionTokenKind {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}
	if id < 1 {
		return 0, fmt.Errorf("invalid pagination token format (id %d out of range)", id)
	}
	return id, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
