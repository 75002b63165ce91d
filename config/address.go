package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultAddressLookupURL = "https://viacep.com.br/ws"

// GetAddressLookupURL returns the postal lookup base URL without a trailing slash.
func GetAddressLookupURL() string {
	v := os.Getenv("ADDRESS_LOOKUP_URL")
	if v == "" {
		return defaultAddressLookupURL
	}
	return strings.TrimRight(v, "/")
}

// GetContextTimeout reads CONTEXT_TIMEOUT in seconds. Zero, the default, disables the deadline.
func GetContextTimeout() time.Duration {
	v := os.Getenv("CONTEXT_TIMEOUT")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		GetLogrusInstance().Warnf("ignoring invalid CONTEXT_TIMEOUT %q", v)
		return 0
	}
	return time.Duration(secs) * time.Second
}
