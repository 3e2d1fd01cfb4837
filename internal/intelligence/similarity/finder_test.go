package similarity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SolBenven/proyecto-final/internal/testutil"
)

func testFinder(threshold float64, limit int) Finder {
	return NewFinder(Config{
		Threshold:   threshold,
		Limit:       limit,
		MaxFeatures: 1000,
	}, testutil.NewMockLogger())
}

func TestFindSimilarRanksByScore(t *testing.T) {
	f := testFinder(0.25, 5)
	candidates := []Candidate{
		{ID: 1, Text: "La canilla del baño pierde agua"},
		{ID: 2, Text: "Impresora de biblioteca sin toner"},
		{ID: 3, Text: "Canilla rota en el baño, pierde mucha agua"},
	}

	matches := f.FindSimilar("canilla del baño pierde agua constantemente", candidates, 0)
	require.NotEmpty(t, matches)
	assert.Equal(t, int64(1), matches[0].Candidate.ID)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
	for _, m := range matches {
		assert.NotEqual(t, int64(2), m.Candidate.ID)
	}
}

func TestFindSimilarThresholdIsStrict(t *testing.T) {
	// Identical texts score 1.0; threshold 1.0 must exclude them because
	// only strictly greater scores qualify.
	f := testFinder(1.0, 5)
	matches := f.FindSimilar("ventana rota", []Candidate{{ID: 1, Text: "ventana rota"}}, 0)
	assert.Empty(t, matches)
}

func TestFindSimilarExcludesID(t *testing.T) {
	f := testFinder(0.25, 5)
	candidates := []Candidate{
		{ID: 7, Text: "proyector del aula 4 no enciende"},
		{ID: 8, Text: "proyector del aula 4 sigue sin encender"},
	}

	matches := f.FindSimilar("proyector del aula 4 no enciende", candidates, 7)
	for _, m := range matches {
		assert.NotEqual(t, int64(7), m.Candidate.ID)
	}
}

func TestFindSimilarRespectsLimit(t *testing.T) {
	f := testFinder(0.1, 2)
	var candidates []Candidate
	for i := 1; i <= 6; i++ {
		candidates = append(candidates, Candidate{
			ID:   int64(i),
			Text: fmt.Sprintf("gotera en el techo del aula %d", i),
		})
	}

	matches := f.FindSimilar("gotera en el techo del aula", candidates, 0)
	assert.Len(t, matches, 2)
}

func TestFindSimilarDegenerateInput(t *testing.T) {
	f := testFinder(0.25, 5)

	assert.Empty(t, f.FindSimilar("", []Candidate{{ID: 1, Text: "algo"}}, 0))
	assert.Empty(t, f.FindSimilar("texto de consulta", nil, 0))
	assert.Empty(t, f.FindSimilar("texto", []Candidate{{ID: 3, Text: "otro"}}, 3))

	// Punctuation-only corpus yields no vocabulary and no matches.
	assert.Empty(t, f.FindSimilar("...", []Candidate{{ID: 1, Text: "!!!"}}, 0))
}

func TestFindSimilarIgnoresStopwordOverlap(t *testing.T) {
	f := testFinder(0.25, 5)
	// Shares only function words with the query.
	matches := f.FindSimilar("la puerta de la entrada esta trabada",
		[]Candidate{{ID: 1, Text: "el wifi de la biblioteca esta caido"}}, 0)
	assert.Empty(t, matches)
}

func TestFindSimilarUnrelatedTextsScoreZero(t *testing.T) {
	f := testFinder(0.0, 5)
	matches := f.FindSimilar("calefaccion apagada en invierno",
		[]Candidate{{ID: 1, Text: "notas finales mal cargadas"}}, 0)
	assert.Empty(t, matches)
}
