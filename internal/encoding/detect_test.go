package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/encoding"
)

func decodeAll(t *testing.T, in []byte) (string, encoding.Charset) {
	t.Helper()

	r, charset, err := encoding.Decode(bytes.NewReader(in))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestDecode_UTF8Passthrough(t *testing.T) {
	input := "category;amount;description\nexpense;12,50;Café\n"

	got, charset := decodeAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestDecode_Windows1252(t *testing.T) {
	// "Descrição;Montante\n" with ç = 0xE7 and ã = 0xE3.
	latin1 := []byte{
		'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
		'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
	}

	got, charset := decodeAll(t, latin1)
	assert.Equal(t, "Descrição;Montante\n", got)
	assert.NotEqual(t, encoding.UTF8, charset)
}

func TestDecode_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("amount;description\n")...)

	got, charset := decodeAll(t, input)
	assert.Equal(t, "amount;description\n", got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestDecode_UTF16LE(t *testing.T) {
	input := []byte{0xFF, 0xFE, 'o', 0, 'k', 0, '\n', 0}

	got, charset := decodeAll(t, input)
	assert.Equal(t, "ok\n", got)
	assert.Equal(t, encoding.UTF16LE, charset)
}

func TestDecode_Empty(t *testing.T) {
	got, charset := decodeAll(t, nil)
	assert.Empty(t, got)
	assert.Equal(t, encoding.UTF8, charset)
}
