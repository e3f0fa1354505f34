package cliente

// Check-digit validation for Brazilian tax identifiers. Both algorithms
// compute two verification digits from weighted digit sums modulo 11:
// remainder < 2 yields digit 0, otherwise 11 - remainder.

// IsValidCPF reports whether s is a structurally valid CPF. It expects a
// digits-only string; anything else is simply invalid.
func IsValidCPF(s string) bool {
	if len(s) != 11 || !allDigits(s) || allSame(s) {
		return false
	}

	// First check digit: weights 10..2 over the first 9 digits
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(s[i]-'0') * (10 - i)
	}
	if checkDigit(sum) != int(s[9]-'0') {
		return false
	}

	// Second check digit: weights 11..2 over the first 10 digits
	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(s[i]-'0') * (11 - i)
	}
	return checkDigit(sum) == int(s[10]-'0')
}

// cnpjWeights1 and cnpjWeights2 are the CNPJ verification weight sequences
var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// IsValidCNPJ reports whether s is a structurally valid CNPJ. It expects a
// digits-only string; anything else is simply invalid.
func IsValidCNPJ(s string) bool {
	if len(s) != 14 || !allDigits(s) || allSame(s) {
		return false
	}

	sum := 0
	for i, w := range cnpjWeights1 {
		sum += int(s[i]-'0') * w
	}
	if checkDigit(sum) != int(s[12]-'0') {
		return false
	}

	sum = 0
	for i, w := range cnpjWeights2 {
		sum += int(s[i]-'0') * w
	}
	return checkDigit(sum) == int(s[13]-'0')
}

func checkDigit(sum int) int {
	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// allSame rejects sequences like "11111111111", which satisfy the check
// digits but are not assignable identifiers
func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
