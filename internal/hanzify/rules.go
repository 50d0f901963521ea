package hanzify

import "maps"

// Single-character substitution tables applied after segmentation.
var (
	// feminineForms replace characters throughout a female name.
	feminineForms = map[rune]rune{
		'巴': '芭',
		'瓦': '娃',
		'代': '黛',
		'真': '珍',
		'利': '莉',
		'林': '琳',
		'雷': '蕾',
		'马': '玛',
		'纳': '娜',
		'南': '楠',
		'尼': '妮',
		'里': '丽',
		'罗': '萝',
		'休': '秀',
		'沙': '莎',
		'亚': '娅',
	}

	// initialForms replace the first character of a name only.
	initialForms = map[rune]rune{
		'夫': '弗',
		'耶': '叶',
		'尔': '勒',
	}

	// specialForms are fixed alternates for a few surname characters.
	// They are not part of the default pipeline; see WithSpecialPairs.
	specialForms = map[rune]rune{
		'东': '栋',
		'江': '姜',
		'西': '锡',
	}
)

// Rules groups the substitution tables a Table is built with.
type Rules struct {
	Feminine map[rune]rune
	Initial  map[rune]rune
	Special  map[rune]rune
}

// DefaultRules returns a copy of the built-in substitution tables.
func DefaultRules() Rules {
	return Rules{
		Feminine: maps.Clone(feminineForms),
		Initial:  maps.Clone(initialForms),
		Special:  maps.Clone(specialForms),
	}
}
