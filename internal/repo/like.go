package repo

import "strings"

type likeKind int

const (
	likeLiteral likeKind = iota
	likeAny
	likeOne
)

type likeToken struct {
	kind likeKind
	r    rune
}

func tokenizeLike(pattern string) []likeToken {
	runes := []rune(pattern)
	tokens := make([]likeToken, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '%':
			tokens = append(tokens, likeToken{kind: likeAny})
		case '_':
			tokens = append(tokens, likeToken{kind: likeOne})
		case '\\':
			// a trailing backslash stands for itself
			if i+1 < len(runes) {
				i++
			}
			tokens = append(tokens, likeToken{kind: likeLiteral, r: runes[i]})
		default:
			tokens = append(tokens, likeToken{kind: likeLiteral, r: runes[i]})
		}
	}
	return tokens
}

// matchLike reports whether s matches the LIKE pattern, case-sensitively.
func matchLike(pattern, s string) bool {
	tokens := tokenizeLike(pattern)
	str := []rune(s)

	ti, si := 0, 0
	star, mark := -1, 0
	for si < len(str) {
		switch {
		case ti < len(tokens) && (tokens[ti].kind == likeOne ||
			tokens[ti].kind == likeLiteral && tokens[ti].r == str[si]):
			ti++
			si++
		case ti < len(tokens) && tokens[ti].kind == likeAny:
			star, mark = ti, si
			ti++
		case star >= 0:
			mark++
			ti, si = star+1, mark
		default:
			return false
		}
	}
	for ti < len(tokens) && tokens[ti].kind == likeAny {
		ti++
	}
	return ti == len(tokens)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes every character of s literal inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// closeTrailingEscape doubles a dangling final backslash so PostgreSQL reads
// it as a literal, the way tokenizeLike does.
func closeTrailingEscape(pattern string) string {
	n := len(pattern) - len(strings.TrimRight(pattern, `\`))
	if n%2 == 1 {
		return pattern + `\`
	}
	return pattern
}

var globEscaper = strings.NewReplacer(`*`, `[*]`, `?`, `[?]`, `[`, `[[]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}

// likeToGlob rewrites a LIKE pattern as an SQLite GLOB pattern, which is case-sensitive.
func likeToGlob(pattern string) string {
	var b strings.Builder
	for _, tok := range tokenizeLike(pattern) {
		switch tok.kind {
		case likeAny:
			b.WriteByte('*')
		case likeOne:
			b.WriteByte('?')
		default:
			b.WriteString(escapeGlob(string(tok.r)))
		}
	}
	return b.String()
}
