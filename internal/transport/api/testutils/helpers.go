package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// GenerateOverBytesUnderRunes генерирует строку, длина которой в рунах всегда меньше длины в байтах.
func GenerateOverBytesUnderRunes(count int) string {
	return strings.Repeat("😁", count) // 4 байта, 1 руна
}

// DecodeJSON читает тело ответа в v и закрывает его.
func DecodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
