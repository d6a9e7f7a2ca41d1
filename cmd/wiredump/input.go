package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// parseHex accepts "14 00", "1400", "0x14,0x00" and "14:00".
func parseHex(s string) ([]byte, error) {
	var b strings.Builder
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ',' || r == ':'
	}) {
		tok = strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
		b.WriteString(tok)
	}
	digits := b.String()
	if digits == "" {
		return nil, fmt.Errorf("no bytes given")
	}
	if len(digits)%2 != 0 {
		return nil, fmt.Errorf("odd number of hex digits in %q", s)
	}
	data, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return data, nil
}

func formatHex(b []byte) string {
	return fmt.Sprintf("% x", b)
}

// readValue decodes a YAML value from path, or from stdin when path is "-".
func readValue(path string, stdin io.Reader) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read value: %w", err)
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return v, nil
}
