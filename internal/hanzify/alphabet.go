package hanzify

// The hard sign has no entry in the phoneme table and is not part of the
// alphabet, so it is rejected during normalization.
const (
	lowercase = "абвгдеёжзийклмнопрстуфхцчшщыьэюя"
	uppercase = "АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЫЬЭЮЯ"
)

var (
	letters   = make(map[rune]bool)
	foldTable = make(map[rune]rune)
)

func init() {
	lower := []rune(lowercase)
	upper := []rune(uppercase)
	if len(lower) != len(upper) {
		panic("hanzify: alphabet case tables differ in length")
	}
	for i, r := range lower {
		letters[r] = true
		foldTable[upper[i]] = r
	}
}

func isLetter(r rune) bool {
	return letters[r]
}

// Alphabet returns the lowercase letters accepted by Normalize, in order.
func Alphabet() []rune {
	return []rune(lowercase)
}
