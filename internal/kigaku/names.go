package kigaku

import "strings"

// DefaultStar is used wherever a star cannot be determined.
const DefaultStar = 1

// Supported name languages.
const (
	LangJapanese = "ja"
	LangEnglish  = "en"
)

var starNames = map[string][9]string{
	LangJapanese: {
		"一白水星", "二黒土星", "三碧木星",
		"四緑木星", "五黄土星", "六白金星",
		"七赤金星", "八白土星", "九紫火星",
	},
	LangEnglish: {
		"One White Water", "Two Black Earth", "Three Jade Wood",
		"Four Green Wood", "Five Yellow Earth", "Six White Metal",
		"Seven Red Metal", "Eight White Earth", "Nine Purple Fire",
	},
}

// Languages lists the languages NameIn knows, default first.
func Languages() []string {
	return []string{LangJapanese, LangEnglish}
}

// Name returns the Japanese name of star. Stars outside 1-9 get star 1's
// name.
func Name(star int) string {
	return NameIn(LangJapanese, star)
}

// NameIn returns star's name in lang. Unknown languages use Japanese.
func NameIn(lang string, star int) string {
	names, ok := starNames[strings.ToLower(lang)]
	if !ok {
		names = starNames[LangJapanese]
	}
	if star < 1 || star > 9 {
		star = DefaultStar
	}
	return names[star-1]
}
