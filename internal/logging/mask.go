package logging

// MaskEmail keeps the first two characters of the local part and the domain.
func MaskEmail(email string) string {
	runes := []rune(email)
	atIdx := -1
	for i, r := range runes {
		if r == '@' {
			atIdx = i
			break
		}
	}
	if atIdx <= 0 {
		return "***"
	}
	domain := string(runes[atIdx:])
	if atIdx <= 2 {
		return string(runes[:atIdx]) + "***" + domain
	}
	return string(runes[:2]) + "***" + domain
}
