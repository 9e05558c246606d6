package content

import "strings"

// LetterData is one letter of the alphabet with the sound and picture word taught with it
type LetterData struct {
	Letter      string
	Uppercase   string
	Lowercase   string
	CommonSound string
	Name        string
	Word        string
	Emoji       string
}

// Alphabet lists every letter in order
var Alphabet = []LetterData{
	{Letter: "A", Uppercase: "A", Lowercase: "a", CommonSound: "/æ/", Name: "A", Word: "Apple", Emoji: "🍎"},
	{Letter: "B", Uppercase: "B", Lowercase: "b", CommonSound: "/b/", Name: "B", Word: "Ball", Emoji: "⚽"},
	{Letter: "C", Uppercase: "C", Lowercase: "c", CommonSound: "/k/", Name: "C", Word: "Cat", Emoji: "🐱"},
	{Letter: "D", Uppercase: "D", Lowercase: "d", CommonSound: "/d/", Name: "D", Word: "Dog", Emoji: "🐕"},
	{Letter: "E", Uppercase: "E", Lowercase: "e", CommonSound: "/ɛ/", Name: "E", Word: "Egg", Emoji: "🥚"},
	{Letter: "F", Uppercase: "F", Lowercase: "f", CommonSound: "/f/", Name: "F", Word: "Fish", Emoji: "🐟"},
	{Letter: "G", Uppercase: "G", Lowercase: "g", CommonSound: "/g/", Name: "G", Word: "Grapes", Emoji: "🍇"},
	{Letter: "H", Uppercase: "H", Lowercase: "h", CommonSound: "/h/", Name: "H", Word: "House", Emoji: "🏠"},
	{Letter: "I", Uppercase: "I", Lowercase: "i", CommonSound: "/ɪ/", Name: "I", Word: "Ice cream", Emoji: "🍦"},
	{Letter: "J", Uppercase: "J", Lowercase: "j", CommonSound: "/dʒ/", Name: "J", Word: "Juice", Emoji: "🧃"},
	{Letter: "K", Uppercase: "K", Lowercase: "k", CommonSound: "/k/", Name: "K", Word: "Kite", Emoji: "🪁"},
	{Letter: "L", Uppercase: "L", Lowercase: "l", CommonSound: "/l/", Name: "L", Word: "Lion", Emoji: "🦁"},
	{Letter: "M", Uppercase: "M", Lowercase: "m", CommonSound: "/m/", Name: "M", Word: "Moon", Emoji: "🌙"},
	{Letter: "N", Uppercase: "N", Lowercase: "n", CommonSound: "/n/", Name: "N", Word: "Nose", Emoji: "👃"},
	{Letter: "O", Uppercase: "O", Lowercase: "o", CommonSound: "/ɔ/", Name: "O", Word: "Orange", Emoji: "🍊"},
	{Letter: "P", Uppercase: "P", Lowercase: "p", CommonSound: "/p/", Name: "P", Word: "Pizza", Emoji: "🍕"},
	{Letter: "Q", Uppercase: "Q", Lowercase: "q", CommonSound: "/kw/", Name: "Q", Word: "Queen", Emoji: "👑"},
	{Letter: "R", Uppercase: "R", Lowercase: "r", CommonSound: "/r/", Name: "R", Word: "Robot", Emoji: "🤖"},
	{Letter: "S", Uppercase: "S", Lowercase: "s", CommonSound: "/s/", Name: "S", Word: "Sun", Emoji: "☀️"},
	{Letter: "T", Uppercase: "T", Lowercase: "t", CommonSound: "/t/", Name: "T", Word: "Tree", Emoji: "🌲"},
	{Letter: "U", Uppercase: "U", Lowercase: "u", CommonSound: "/ʌ/", Name: "U", Word: "Umbrella", Emoji: "☂️"},
	{Letter: "V", Uppercase: "V", Lowercase: "v", CommonSound: "/v/", Name: "V", Word: "Violin", Emoji: "🎻"},
	{Letter: "W", Uppercase: "W", Lowercase: "w", CommonSound: "/w/", Name: "W", Word: "Watermelon", Emoji: "🍉"},
	{Letter: "X", Uppercase: "X", Lowercase: "x", CommonSound: "/ks/", Name: "X", Word: "Xylophone", Emoji: "🎹"},
	{Letter: "Y", Uppercase: "Y", Lowercase: "y", CommonSound: "/j/", Name: "Y", Word: "Yarn", Emoji: "🧶"},
	{Letter: "Z", Uppercase: "Z", Lowercase: "z", CommonSound: "/z/", Name: "Z", Word: "Zebra", Emoji: "🦓"},
}

// Letter tiers, introduced by difficulty
var (
	EasyLetters   = []string{"A", "B", "C", "D", "M", "S", "T"}
	MediumLetters = []string{"E", "F", "G", "H", "I", "L", "N", "O", "P", "R"}
	HardLetters   = []string{"J", "K", "Q", "U", "V", "W", "X", "Y", "Z"}
)

// ConfusableLetters maps a glyph to the glyphs it is visually mistaken for
var ConfusableLetters = map[string][]string{
	"B": {"D", "P", "R"},
	"D": {"B", "O", "P"},
	"E": {"F"},
	"F": {"E", "T"},
	"M": {"N", "W"},
	"N": {"M", "H"},
	"O": {"Q", "C", "D"},
	"P": {"B", "R", "D"},
	"Q": {"O", "G"},
	"U": {"V"},
	"V": {"U", "Y"},
	"W": {"M", "V"},

	"b": {"d", "p", "q"},
	"d": {"b", "p", "q"},
	"p": {"b", "d", "q"},
	"q": {"b", "d", "p"},
	"n": {"m", "h", "u"},
	"m": {"n", "w"},
	"u": {"n", "v"},
	"v": {"u", "w"},
	"w": {"m", "v"},
}

// LookupLetter finds a letter by either of its glyphs
func LookupLetter(glyph string) (LetterData, bool) {
	upper := strings.ToUpper(glyph)
	for _, l := range Alphabet {
		if l.Letter == upper {
			return l, true
		}
	}
	return LetterData{}, false
}
