package service

import "strings"

// ValidCedula checks a Dominican cédula: 11 digits (dashes allowed)
// where the last digit is a mod-10 verifier over the first ten, with
// alternating multipliers 1 and 2 and digit-sum reduction of products
// above 9.
func ValidCedula(cedula string) bool {
	cedula = strings.TrimSpace(strings.ReplaceAll(cedula, "-", ""))

	if len(cedula) != 11 {
		return false
	}
	for _, r := range cedula {
		if r < '0' || r > '9' {
			return false
		}
	}

	sum := 0
	multipliers := [2]int{1, 2}
	for i := 0; i < 10; i++ {
		product := int(cedula[i]-'0') * multipliers[i%2]
		if product > 9 {
			product = product/10 + product%10
		}
		sum += product
	}

	verifier := (10 - sum%10) % 10
	return int(cedula[10]-'0') == verifier
}
