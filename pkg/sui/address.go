package sui

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const addressHexLen = 64

// NormalizeAddress 校验并规范化 Sui 地址: 小写，左侧补零到 32 字节
func NormalizeAddress(addr string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(addr))
	if !strings.HasPrefix(s, "0x") {
		return "", fmt.Errorf("address %q: missing 0x prefix", addr)
	}
	h := s[2:]
	if h == "" || len(h) > addressHexLen {
		return "", fmt.Errorf("address %q: bad length", addr)
	}
	padded := strings.Repeat("0", addressHexLen-len(h)) + h
	if _, err := hex.DecodeString(padded); err != nil {
		return "", fmt.Errorf("address %q: not hex", addr)
	}
	return "0x" + padded, nil
}
