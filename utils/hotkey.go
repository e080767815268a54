package utils

// Hotkey modifier flags, as RegisterHotKey expects them.
const (
	MOD_ALT     = 0x0001
	MOD_CONTROL = 0x0002
	MOD_SHIFT   = 0x0004
	MOD_WIN     = 0x0008
)

// ParseHotkey parses a hotkey string (e.g., "Ctrl+Shift+N") into modifiers and key.
func ParseHotkey(hotkey string) (modifiers uint32, vk uint32, ok bool) {
	// Map of modifier names to constants
	modMap := map[string]uint32{
		"ctrl":    MOD_CONTROL,
		"control": MOD_CONTROL,
		"alt":     MOD_ALT,
		"shift":   MOD_SHIFT,
		"win":     MOD_WIN,
	}

	// Map of virtual key codes for common keys
	vkMap := map[string]uint32{
		"a": 0x41, "b": 0x42, "c": 0x43, "d": 0x44, "e": 0x45,
		"f": 0x46, "g": 0x47, "h": 0x48, "i": 0x49, "j": 0x4A,
		"k": 0x4B, "l": 0x4C, "m": 0x4D, "n": 0x4E, "o": 0x4F,
		"p": 0x50, "q": 0x51, "r": 0x52, "s": 0x53, "t": 0x54,
		"u": 0x55, "v": 0x56, "w": 0x57, "x": 0x58, "y": 0x59,
		"z": 0x5A,
		"0": 0x30, "1": 0x31, "2": 0x32, "3": 0x33, "4": 0x34,
		"5": 0x35, "6": 0x36, "7": 0x37, "8": 0x38, "9": 0x39,
		"f1": 0x70, "f2": 0x71, "f3": 0x72, "f4": 0x73, "f5": 0x74,
		"f6": 0x75, "f7": 0x76, "f8": 0x77, "f9": 0x78, "f10": 0x79,
		"f11": 0x7A, "f12": 0x7B,
		"space": 0x20, "enter": 0x0D, "tab": 0x09, "escape": 0x1B, "esc": 0x1B,
	}

	parts := splitHotkey(hotkey)
	if len(parts) == 0 {
		return 0, 0, false
	}

	for i, part := range parts {
		lower := toLower(part)
		if i == len(parts)-1 {
			// Last part is the key
			if v, ok := vkMap[lower]; ok {
				vk = v
			} else {
				return 0, 0, false
			}
		} else {
			if m, ok := modMap[lower]; ok {
				modifiers |= m
			} else {
				return 0, 0, false
			}
		}
	}

	return modifiers, vk, true
}

// splitHotkey splits a hotkey string by + separator.
func splitHotkey(s string) []string {
	var result []string
	var current string

	for _, c := range s {
		if c == '+' {
			if current != "" {
				result = append(result, current)
				current = ""
			}
		} else if c != ' ' {
			current += string(c)
		}
	}
	if current != "" {
		result = append(result, current)
	}

	return result
}

// toLower converts an ASCII string to lowercase.
func toLower(s string) string {
	result := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			result[i] = c + 32
		} else {
			result[i] = c
		}
	}
	return string(result)
}
