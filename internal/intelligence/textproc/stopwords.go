package textproc

// SpanishStopwords lists high-frequency Spanish function words.  The duplicate
// detector and the keyword analytics both exclude them so that claims do not
// match or rank on words like "de" and "la".  Claim text on this platform is
// Spanish.
var SpanishStopwords = func() map[string]struct{} {
	words := []string{
		"al", "algo", "ante", "antes", "como", "con", "contra", "cual",
		"cuando", "de", "del", "desde", "donde", "durante", "el", "ella",
		"ellas", "ellos", "en", "entre", "era", "es", "esa", "esas", "ese",
		"eso", "esos", "esta", "estaba", "estan", "estas", "este", "esto",
		"estos", "fue", "ha", "hace", "hacia", "han", "hasta", "hay", "la",
		"las", "le", "les", "lo", "los", "mas", "me", "mi", "muy", "nada",
		"ni", "no", "nos", "nuestra", "nuestro", "os", "otra", "otro",
		"para", "pero", "poco", "por", "porque", "que", "quien", "se",
		"sea", "ser", "si", "sin", "sobre", "son", "su", "sus", "tambien",
		"tanto", "te", "tiene", "tienen", "todo", "todos", "tu", "un",
		"una", "unas", "uno", "unos", "ya", "yo",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// IsStopword reports whether the normalized token is a Spanish stopword.
func IsStopword(token string) bool {
	_, ok := SpanishStopwords[token]
	return ok
}
