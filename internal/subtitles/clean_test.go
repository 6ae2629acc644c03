package subtitles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"timecode and closing tag", "Hello <00:00:01.000>world</c>", "Hello world"},
		{"styled span", "<c>bonjour</c><00:00:02.120><c> tout</c><00:00:02.400><c> le monde</c>", "bonjour tout le monde"},
		{"color class", "<c.colorE5E5E5>gris</c>", "gris"},
		{"italic", "<i>Musique</i>", "Musique"},
		{"leading and trailing spaces", "  texte  ", "texte"},
		{"inner spacing preserved", "a  b\tc", "a  b\tc"},
		{"punctuation preserved", "Quoi ?! <b>Non...</b>", "Quoi ?! Non..."},
		{"other markup untouched", "<v Roger>salut", "<v Roger>salut"},
		{"malformed timecode untouched", "<0:00:01.000>x", "<0:00:01.000>x"},
		{"nested fragments", "<<c>c>x", "x"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clean(tc.in))
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"Hello <00:00:01.000>world</c>",
		"<<c>c>",
		"<</c>/c>abc",
		"<<00:00:01.000>00:00:02.000>",
		" <c> </c> ",
		"déjà propre",
		"<c.color<c>FFF>x</c>",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}
