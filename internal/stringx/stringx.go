package stringx

import "strings"

// IsBlank сообщает, что строка пустая или состоит только из пробельных символов
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// SafeSubstring возвращает подстроку длиной не более length рун, начиная с позиции start.
// При некорректном start возвращается пустая строка
func SafeSubstring(s string, start, length int) string {
	runes := []rune(s)
	if start < 0 || start >= len(runes) || length <= 0 {
		return ""
	}

	end := start + length
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}
