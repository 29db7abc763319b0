package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Windows virtual-key codes for keys that make sense as a lone,
// modifier-free global hotkey.
var keyCodes = map[string]uint16{
	"pause":       0x13,
	"break":       0x13,
	"capslock":    0x14,
	"scrolllock":  0x91,
	"numlock":     0x90,
	"insert":      0x2D,
	"home":        0x24,
	"end":         0x23,
	"pageup":      0x21,
	"pagedown":    0x22,
	"apps":        0x5D,
	"printscreen": 0x2C,
	"volumemute":  0xAD,
	"mediaplay":   0xB3,
}

// Function keys F1..F24 are 0x70..0x87.
const vkF1 = 0x70

// ParseKey resolves a hotkey name from settings.yaml to a virtual-key code.
// Names are case-insensitive; "0x"-prefixed hex codes are accepted as-is.
func ParseKey(name string) (uint16, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(n)
	if n == "" {
		return 0, fmt.Errorf("empty key name")
	}

	if code, ok := keyCodes[n]; ok {
		return code, nil
	}

	if strings.HasPrefix(n, "0x") {
		code, err := strconv.ParseUint(n[2:], 16, 8)
		if err != nil || code == 0 {
			return 0, fmt.Errorf("invalid virtual-key code %q", name)
		}
		return uint16(code), nil
	}

	if strings.HasPrefix(n, "f") {
		if num, err := strconv.Atoi(n[1:]); err == nil && num >= 1 && num <= 24 {
			return uint16(vkF1 + num - 1), nil
		}
	}

	return 0, fmt.Errorf("unknown key %q", name)
}

// KeyName returns the canonical display name for a virtual-key code.
func KeyName(code uint16) string {
	if code >= vkF1 && code < vkF1+24 {
		return fmt.Sprintf("F%d", code-vkF1+1)
	}
	switch code {
	case 0x13:
		return "Pause"
	case 0x14:
		return "CapsLock"
	case 0x91:
		return "ScrollLock"
	case 0x90:
		return "NumLock"
	}
	return fmt.Sprintf("0x%02X", code)
}
