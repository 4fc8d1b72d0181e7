package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleInputAcceptsBothSpellings(t *testing.T) {
	var inputs []ArticleInput
	raw := `[
		{"titre": "Veste", "lien": "https://a.example"},
		{"title": "Sac", "link": "https://b.example"}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &inputs))

	assert.Equal(t, "Veste", inputs[0].NormalizedTitre())
	assert.Equal(t, "https://a.example", inputs[0].NormalizedLien())
	assert.Equal(t, "Sac", inputs[1].NormalizedTitre())
	assert.Equal(t, "https://b.example", inputs[1].NormalizedLien())
}

func TestArticleInputPrixCoercion(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want float64
	}{
		{"number", `{"prix": 49.9}`, 49.9},
		{"integer", `{"prix": 120}`, 120},
		{"numeric string", `{"prix": "15.5"}`, 15.5},
		{"garbage string", `{"prix": "gratuit"}`, 0},
		{"missing", `{}`, 0},
		{"null", `{"prix": null}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var in ArticleInput
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &in))
			assert.InDelta(t, tc.want, in.NormalizedPrix(), 0.001)
		})
	}
}
