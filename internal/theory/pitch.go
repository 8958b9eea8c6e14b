package theory

import "strings"

// PitchClass is one of the 12 equal-tempered note classes, 0=C through 11=B.
// It is canonical and spelling-independent.
type PitchClass int

// NoteName is a spelled pitch class ("C#", "Db"). The spelling is chosen by
// the key-spelling policy: flat names for keys in the flat-key set or when
// the requested accidental is explicitly flat, sharp names otherwise.
type NoteName string

var sharpNames = [12]NoteName{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [12]NoteName{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// flatKeys is the fixed set of key names spelled with flats.
var flatKeys = map[string]bool{
	"F":  true,
	"Bb": true,
	"Eb": true,
	"Ab": true,
	"Db": true,
	"Gb": true,
	"Cb": true,
}

// naturalPitch maps note letters to their natural pitch class.
var naturalPitch = map[byte]PitchClass{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// ParseNote parses a spelled note name ("C", "F#", "Bb", "E♭", "Fx" is not
// supported but chained "##"/"bb" are) into its pitch class.
// Returns ok=false for anything that is not a note name.
func ParseNote(name string) (PitchClass, bool) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, false
	}
	letter := s[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	pc, ok := naturalPitch[letter]
	if !ok {
		return 0, false
	}
	for _, r := range s[1:] {
		switch r {
		case '#', '♯':
			pc++
		case 'b', '♭':
			pc--
		default:
			return 0, false
		}
	}
	return ((pc % 12) + 12) % 12, true
}

// UsesFlats reports whether the given key name takes flat spellings: either
// its accidental token is explicitly flat, or it is in the flat-key set.
func UsesFlats(key string) bool {
	s := strings.TrimSpace(key)
	if len(s) >= 2 {
		switch s[1] {
		case 'b':
			return true
		}
		if strings.HasPrefix(s[1:], "♭") {
			return true
		}
	}
	return flatKeys[s]
}

// Name spells the pitch class with sharps or flats.
func (pc PitchClass) Name(flat bool) NoteName {
	i := ((pc % 12) + 12) % 12
	if flat {
		return flatNames[i]
	}
	return sharpNames[i]
}

// SpellForKey spells the pitch class following the key-spelling policy of
// the given key.
func SpellForKey(pc PitchClass, key string) NoteName {
	return pc.Name(UsesFlats(key))
}

// ToFlatEnharmonic rewrites a sharp spelling to its flat enharmonic
// ("C#" -> "Db"). Naturals and flats are returned untouched. Unparseable
// names are returned untouched.
func ToFlatEnharmonic(n NoteName) NoteName {
	if !strings.ContainsAny(string(n), "#♯") {
		return n
	}
	pc, ok := ParseNote(string(n))
	if !ok {
		return n
	}
	return pc.Name(true)
}

// Transpose returns the pitch class offset by the given number of semitones.
func (pc PitchClass) Transpose(semitones int) PitchClass {
	return ((pc + PitchClass(semitones)) % 12 + 12) % 12
}
