package sanitize

import "unicode"

// substitutions holds the semantic replacements keyed by code point.
// Every value must consist of characters accepted by IsSafe.
var substitutions = buildSubstitutions()

// script associates a Unicode range table with the tag emitted for each
// character of that script.
type script struct {
	table *unicode.RangeTable
	tag   string
}

// scripts are checked in order after every character-level rule failed.
var scripts = []script{
	{unicode.Cyrillic, "[Cyrillic]"},
	{unicode.Hebrew, "[Hebrew]"},
	{unicode.Arabic, "[Arabic]"},
	{unicode.Thai, "[Thai]"},
	{unicode.Han, "[CJK]"},
	{unicode.Hiragana, "[Japanese]"},
	{unicode.Katakana, "[Japanese]"},
	{unicode.Hangul, "[Korean]"},
	{emoji, "[Emoji]"},
}

// emoji covers the pictographic blocks. Dingbats and miscellaneous symbols
// with a textual substitution are matched earlier by the table.
var emoji = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1},
		{Lo: 0x2B00, Hi: 0x2BFF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1FAFF, Stride: 1},
	},
}

var greekLower = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta",
	"iota", "kappa", "lambda", "mu", "nu", "xi", "omicron", "pi", "rho",
	"sigma", // final sigma, U+03C2
	"sigma", "tau", "upsilon", "phi", "chi", "psi", "omega",
}

func buildSubstitutions() map[rune]string {
	m := map[rune]string{}

	set := func(out string, runes ...rune) {
		for _, r := range runes {
			m[r] = out
		}
	}
	span := func(out string, lo, hi rune) {
		for r := lo; r <= hi; r++ {
			m[r] = out
		}
	}

	// Quotation marks.
	set("'", '‘', '’', '‚', '‛', 'ʼ', '′')
	set("\"", '“', '”', '„', '‟', '″')
	set("'''", '‴')
	set("<", '‹')
	set(">", '›')

	// Dashes and hyphens.
	set("-", '‐', '‑', '‒', '–', '—', '―', '−', '⁃')

	// Ellipsis and bullets.
	set("...", '…')
	set("..", '‥')
	set("*", '•', '‣', '◦', '∙', '●', '○', '■', '□', '▪', '▫', '★', '☆', '∗', '⋅')
	set("v", '✓', '✔')
	set("x", '✕', '✖', '✗', '✘')

	// Arrows.
	set("<-", '←', '⟵')
	set("->", '→', '⟶', '➜', '➡')
	set("^", '↑')
	set("v", '↓')
	set("<->", '↔', '⟷')
	set("<=", '⇐', '≤', '⩽')
	set("=>", '⇒', '⟹')
	set("<=>", '⇔', '⟺')

	// Operators and math symbols.
	set("+", '➕')
	set("-", '➖')
	set("/", '➗', '∕', '⁄')
	set("-/+", '∓')
	set(">=", '≥', '⩾')
	set("!=", '≠')
	set("~", '≈', '∼', '≃')
	set("==", '≡')
	set("inf", '∞')
	set("sum", '∑')
	set("prod", '∏')
	set("integral", '∫')
	set("sqrt", '√')
	set("d", '∂')
	set("delta", '∆')
	set("nabla", '∇')
	set("in", '∈')
	set("not in", '∉')
	set("forall", '∀')
	set("exists", '∃')
	set("1/3", '⅓')
	set("2/3", '⅔')
	set("1/8", '⅛')

	// Width-variant and zero-width spaces.
	span(" ", '\u2000', '\u200A')
	set(" ", '\u202F', '\u205F', '\u3000')
	set("", '\u200B', '\u200C', '\u200D', '\u2060', '\uFEFF')

	// Currency.
	set("EUR", '€')
	set("INR", '₹')
	set("RUB", '₽')
	set("KRW", '₩')
	set("TRY", '₺')
	set("VND", '₫')
	set("ILS", '₪')
	set("PHP", '₱')
	set("UAH", '₴')
	set("BTC", '₿')

	// Trademark, service and sound recording marks.
	set("(TM)", '™')
	set("(SM)", '℠')
	set("(P)", '℗')

	// Degree compounds.
	set("°C", '℃')
	set("°F", '℉')

	// Superscript and subscript digits.
	m['⁰'] = "0"
	for d := rune(4); d <= 9; d++ {
		m['⁰'+d] = string('0' + d)
	}
	for d := rune(0); d <= 9; d++ {
		m['₀'+d] = string('0' + d)
	}
	set("+", '⁺', '₊')
	set("-", '⁻', '₋')

	// Latin letters without a canonical decomposition.
	set("L", 'Ł')
	set("l", 'ł')
	set("D", 'Đ')
	set("d", 'đ')
	set("OE", 'Œ')
	set("oe", 'œ')
	set("i", 'ı')
	set("s", 'ſ')

	// Greek alphabet.
	for i, name := range greekLower {
		lower := rune(0x03B1 + i)
		m[lower] = name
		upper := rune(0x0391 + i)
		if upper == 0x03A2 {
			continue // unassigned, final sigma has no capital
		}
		m[upper] = capitalize(name)
	}

	return m
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(unicode.ToUpper(rune(s[0]))) + s[1:]
}
