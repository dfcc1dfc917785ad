package content

import "strings"

const whatsAppShareBase = "https://wa.me/?text="

const upperhex = "0123456789ABCDEF"

// WhatsAppShareURL enlace que abre WhatsApp con el texto precargado.
func WhatsAppShareURL(text string) string {
	return whatsAppShareBase + encodeURIComponent(text)
}

// encodeURIComponent codifica en UTF-8 con %XX todo salvo letras, dígitos y -_.!~*'().
// Los espacios quedan como %20.
func encodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func unreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
