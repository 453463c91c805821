package validators

import "strings"

// NormalizePhone reduz o telefone a dígitos (preservando o + de DDI) e
// devolve false quando o resultado não tem tamanho de telefone.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder

	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// separadores comuns de formatação
		default:
			return "", false
		}
	}

	phone := b.String()
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < 8 || len(digits) > 15 {
		return "", false
	}
	return phone, true
}
