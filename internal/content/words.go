// Package content holds the curated word, phoneme and letter data that rounds are built from.
package content

// Word frequency bands
const (
	FrequencyCommon   = 1
	FrequencyModerate = 2
	FrequencyRare     = 3
)

// WordData is a word with its phoneme breakdown
type WordData struct {
	Word      string
	Phonemes  []string
	Frequency int
}

// Words is the word pool for sound rounds, ordered from CVC words up to longer blends
var Words = []WordData{
	// CVC
	{Word: "cat", Phonemes: []string{"k", "æ", "t"}, Frequency: FrequencyCommon},
	{Word: "dog", Phonemes: []string{"d", "ɔ", "g"}, Frequency: FrequencyCommon},
	{Word: "sun", Phonemes: []string{"s", "ʌ", "n"}, Frequency: FrequencyCommon},
	{Word: "mat", Phonemes: []string{"m", "æ", "t"}, Frequency: FrequencyCommon},
	{Word: "sit", Phonemes: []string{"s", "ɪ", "t"}, Frequency: FrequencyCommon},
	{Word: "run", Phonemes: []string{"r", "ʌ", "n"}, Frequency: FrequencyCommon},
	{Word: "big", Phonemes: []string{"b", "ɪ", "g"}, Frequency: FrequencyCommon},
	{Word: "hot", Phonemes: []string{"h", "ɔ", "t"}, Frequency: FrequencyCommon},
	{Word: "red", Phonemes: []string{"r", "ɛ", "d"}, Frequency: FrequencyCommon},
	{Word: "pen", Phonemes: []string{"p", "ɛ", "n"}, Frequency: FrequencyCommon},
	{Word: "fox", Phonemes: []string{"f", "ɔ", "k", "s"}, Frequency: FrequencyCommon},
	{Word: "box", Phonemes: []string{"b", "ɔ", "k", "s"}, Frequency: FrequencyCommon},
	{Word: "pig", Phonemes: []string{"p", "ɪ", "g"}, Frequency: FrequencyCommon},
	{Word: "bug", Phonemes: []string{"b", "ʌ", "g"}, Frequency: FrequencyCommon},
	{Word: "hat", Phonemes: []string{"h", "æ", "t"}, Frequency: FrequencyCommon},
	{Word: "bag", Phonemes: []string{"b", "æ", "g"}, Frequency: FrequencyCommon},
	{Word: "bed", Phonemes: []string{"b", "ɛ", "d"}, Frequency: FrequencyCommon},
	{Word: "cup", Phonemes: []string{"k", "ʌ", "p"}, Frequency: FrequencyCommon},
	{Word: "bus", Phonemes: []string{"b", "ʌ", "s"}, Frequency: FrequencyCommon},
	{Word: "fit", Phonemes: []string{"f", "ɪ", "t"}, Frequency: FrequencyCommon},

	// CVCC and digraphs
	{Word: "jump", Phonemes: []string{"dʒ", "ʌ", "m", "p"}, Frequency: FrequencyModerate},
	{Word: "hand", Phonemes: []string{"h", "æ", "n", "d"}, Frequency: FrequencyCommon},
	{Word: "sand", Phonemes: []string{"s", "æ", "n", "d"}, Frequency: FrequencyModerate},
	{Word: "lamp", Phonemes: []string{"l", "æ", "m", "p"}, Frequency: FrequencyModerate},
	{Word: "tent", Phonemes: []string{"t", "ɛ", "n", "t"}, Frequency: FrequencyModerate},
	{Word: "milk", Phonemes: []string{"m", "ɪ", "l", "k"}, Frequency: FrequencyCommon},
	{Word: "fish", Phonemes: []string{"f", "ɪ", "ʃ"}, Frequency: FrequencyCommon},
	{Word: "duck", Phonemes: []string{"d", "ʌ", "k"}, Frequency: FrequencyCommon},
	{Word: "ring", Phonemes: []string{"r", "ɪ", "ŋ"}, Frequency: FrequencyModerate},
	{Word: "king", Phonemes: []string{"k", "ɪ", "ŋ"}, Frequency: FrequencyModerate},

	// CCVC
	{Word: "stop", Phonemes: []string{"s", "t", "ɔ", "p"}, Frequency: FrequencyCommon},
	{Word: "frog", Phonemes: []string{"f", "r", "ɔ", "g"}, Frequency: FrequencyModerate},
	{Word: "slip", Phonemes: []string{"s", "l", "ɪ", "p"}, Frequency: FrequencyModerate},
	{Word: "trip", Phonemes: []string{"t", "r", "ɪ", "p"}, Frequency: FrequencyModerate},
	{Word: "snap", Phonemes: []string{"s", "n", "æ", "p"}, Frequency: FrequencyModerate},
	{Word: "drum", Phonemes: []string{"d", "r", "ʌ", "m"}, Frequency: FrequencyModerate},
	{Word: "flag", Phonemes: []string{"f", "l", "æ", "g"}, Frequency: FrequencyModerate},
	{Word: "plan", Phonemes: []string{"p", "l", "æ", "n"}, Frequency: FrequencyModerate},

	// Longer blends
	{Word: "plant", Phonemes: []string{"p", "l", "æ", "n", "t"}, Frequency: FrequencyModerate},
	{Word: "print", Phonemes: []string{"p", "r", "ɪ", "n", "t"}, Frequency: FrequencyModerate},
	{Word: "stamp", Phonemes: []string{"s", "t", "æ", "m", "p"}, Frequency: FrequencyModerate},
	{Word: "bench", Phonemes: []string{"b", "ɛ", "n", "tʃ"}, Frequency: FrequencyModerate},
	{Word: "lunch", Phonemes: []string{"l", "ʌ", "n", "tʃ"}, Frequency: FrequencyModerate},
	{Word: "think", Phonemes: []string{"θ", "ɪ", "ŋ", "k"}, Frequency: FrequencyModerate},
	{Word: "shrimp", Phonemes: []string{"ʃ", "r", "ɪ", "m", "p"}, Frequency: FrequencyRare},
	{Word: "spring", Phonemes: []string{"s", "p", "r", "ɪ", "ŋ"}, Frequency: FrequencyModerate},
}

// Consonants are the consonant phonemes used as random distractors
var Consonants = []string{"b", "d", "f", "g", "h", "k", "l", "m", "n", "p", "r", "s", "t", "v", "w", "z"}

// Vowels are the short vowel phonemes used as random distractors
var Vowels = []string{"æ", "ɛ", "ɪ", "ɔ", "ʌ", "i", "u", "ə"}

// ConfusablePhonemes maps a phoneme to the phonemes learners most often mistake it for
var ConfusablePhonemes = map[string][]string{
	"k": {"g", "t", "p"},
	"g": {"k", "d", "b"},
	"t": {"d", "k", "p"},
	"d": {"t", "g", "b"},
	"p": {"b", "t", "k"},
	"b": {"p", "d", "g"},
	"s": {"z", "ʃ", "θ"},
	"z": {"s", "ʒ"},
	"f": {"v", "θ"},
	"v": {"f", "ð"},
	"m": {"n", "ŋ"},
	"n": {"m", "ŋ"},
	"æ": {"ɛ", "ʌ"},
	"ɛ": {"æ", "ɪ"},
	"ɪ": {"i", "ɛ"},
	"ɔ": {"ɑ", "ʌ"},
	"ʌ": {"ʊ", "ɔ", "æ"},
}

// IsVowel reports whether p belongs to the vowel inventory
func IsVowel(p string) bool {
	for _, v := range Vowels {
		if v == p {
			return true
		}
	}
	return false
}
