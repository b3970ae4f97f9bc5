package reading

import "strings"

type messages struct {
	prompt     string
	template   string
	categories map[string]string
}

func (m messages) category(c string) string {
	if label, ok := m.categories[c]; ok {
		return label
	}
	return c
}

var catalog = map[string]messages{
	"ja": {
		prompt: "あなたは九星気学の鑑定士です。本命星「{honmei}」、月命星「{getsumei}」、" +
			"地域「{region}」の相談者から「{category}」について次の相談を受けました。\n" +
			"相談内容: {message}\n" +
			"300文字程度で、前向きで具体的な助言を日本語で書いてください。",
		template: "{category}の運勢: 本命星{honmei}と月命星{getsumei}の組み合わせは、" +
			"今は焦らず足元を固める時期を示しています。身近な人との対話を大切にすると、" +
			"自然と良い流れが巡ってきます。",
		categories: map[string]string{
			"love":    "恋愛",
			"work":    "仕事",
			"health":  "健康",
			"money":   "金運",
			"general": "総合",
		},
	},
	"en": {
		prompt: "You are a Nine Star Ki reader. A client whose year star is {honmei} and month star is " +
			"{getsumei}, living in {region}, asks about {category}.\n" +
			"Question: {message}\n" +
			"Reply in English with about 120 words of positive, concrete advice.",
		template: "{category} reading: the pairing of {honmei} and {getsumei} points to a time for " +
			"steady groundwork rather than haste. Value conversations with the people close to you " +
			"and a good current will follow.",
		categories: map[string]string{
			"love":    "Love",
			"work":    "Work",
			"health":  "Health",
			"money":   "Money",
			"general": "General",
		},
	},
}

func messagesFor(lang string) messages {
	if m, ok := catalog[strings.ToLower(lang)]; ok {
		return m
	}
	return catalog["ja"]
}
