package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/billbook/internal/encoding"
)

func TestNewUTF8Reader(t *testing.T) {
	const text = "name,price\nCafé Crème,₹120\n"

	latin, err := charmap.Windows1252.NewEncoder().String("name,price\nCafé Crème,120\n")
	require.NoError(t, err)

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(text)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{name: "UTF-8 Passthrough", input: []byte(text), want: text},
		{name: "UTF-8 BOM Stripped", input: append([]byte{0xEF, 0xBB, 0xBF}, text...), want: text},
		{name: "UTF-16 LE", input: []byte(utf16), want: text},
		{name: "Windows-1252", input: []byte(latin), want: "name,price\nCafé Crème,120\n"},
		{name: "Empty", input: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestNewUTF8Reader_LargeInput(t *testing.T) {
	input := bytes.Repeat([]byte("Basmati Rice,60\n"), 1000)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestDetect(t *testing.T) {
	assert.Equal(t, encoding.UTF8, encoding.Detect([]byte("plain ascii")))
	assert.Equal(t, encoding.UTF8BOM, encoding.Detect([]byte{0xEF, 0xBB, 0xBF, 'a'}))
	assert.Equal(t, encoding.UTF16BE, encoding.Detect([]byte{0xFE, 0xFF, 0x00, 'a'}))
}
