// core/alphabet/alphabet.go
package alphabet

// Codes is the 15-symbol IUPAC nucleotide alphabet: the four definite
// bases plus the ambiguity codes.
const Codes = "ACGTRYSWKMBDHVN"

var valid [256]bool

func init() {
	for i := 0; i < len(Codes); i++ {
		c := Codes[i]
		valid[c] = true
		valid[c|0x20] = true // lower case
	}
}

// ValidNucleotides reports whether s is non-empty and consists solely
// of IUPAC nucleotide codes, either case.
func ValidNucleotides(s []byte) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if !valid[c] {
			return false
		}
	}
	return true
}
