// Package utils carries small shared helpers over the JSON and slice
// libraries the service standardizes on.
package utils

import (
	"github.com/bytedance/sonic"
)

// Marshal serializes v to JSON bytes.
func Marshal(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

// Unmarshal parses JSON bytes into v.
func Unmarshal(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}
