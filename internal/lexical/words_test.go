package lexical

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractWords(t *testing.T) {
	got := ExtractWords("Gallia est omnis divisa in partes tres, quarum unam incolunt Belgae; Gallia. 3 a")
	assert.Equal(t, []string{"Gallia", "est", "omnis", "divisa", "in", "partes", "tres", "quarum", "unam", "incolunt", "Belgae"}, got)
}

func TestExtractWordsFromHTML(t *testing.T) {
	tests := []struct {
		name     string
		document string
		want     []string
	}{
		{
			name: "paragraph text",
			document: `<html><head><title>Roma</title></head>
<body><p>Rōma est <b>caput</b> mundi.</p></body></html>`,
			want: []string{"Roma", "Rōma", "est", "caput", "mundi"},
		},
		{
			name: "skips scripts and styles",
			document: `<body><script>var omnis = 1;</script><style>p { color: red; }</style>
<p>arma virumque cano</p></body>`,
			want: []string{"arma", "virumque", "cano"},
		},
		{
			name:     "empty document",
			document: "",
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractWordsFromHTML(strings.NewReader(tt.document))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
