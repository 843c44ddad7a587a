package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// DefaultLimit and MaxLimit bound page sizes when the caller asks for none or too many.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// EncodeMultiFieldToken creates a token with any number of string fields
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
	return strings.Split(string(decodedBytes), "|"), nil
}

// EncodeOffsetToken creates a token pointing at a position in one scope's
// ordered list, e.g. an account's transaction log.
func EncodeOffsetToken(scope string, offset int) string {
	return EncodeMultiFieldToken(scope, strconv.Itoa(offset))
}

// DecodeOffsetToken returns the position stored in token. A token issued for
// a different scope is rejected.
func DecodeOffsetToken(token, scope string) (int, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	if parts[0] != scope {
		return 0, fmt.Errorf("pagination token was issued for a different list")
	}
	offset, err := strconv.Atoi(parts[1])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset)")
	}
	return offset, nil
}

// Page cuts one page out of a list of total items starting at offset. It
// returns the end index and whether more items follow.
func Page(total, offset, limit int) (end int, more bool) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset > total {
		offset = total
	}
	end = offset + limit
	if end >= total {
		return total, false
	}
	return end, true
}
