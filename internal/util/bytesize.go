package util

import (
	"math"
	"strconv"
	"strings"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// StripDataURIPrefix removes the scheme/metadata prefix of a data URI
// (everything up to and including the first comma), leaving the raw
// base-64 payload. Strings without a comma are returned unchanged.
func StripDataURIPrefix(s string) string {
	if idx := strings.IndexByte(s, ','); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// Base64Size returns the decoded byte size of a base-64 string:
// floor(len*3/4) minus one byte per trailing '=' pad character.
func Base64Size(b64 string) int64 {
	b64 = StripDataURIPrefix(b64)
	if b64 == "" {
		return 0
	}
	pad := int64(0)
	if strings.HasSuffix(b64, "==") {
		pad = 2
	} else if strings.HasSuffix(b64, "=") {
		pad = 1
	}
	return int64(len(b64))*3/4 - pad
}

// FormatFileSize renders a byte count using base-1024 units, rounded
// to at most 2 decimals with trailing zeros dropped.
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[unit]
}
