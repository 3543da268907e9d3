package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/taka-daredemo/JICA/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, string) {
	t.Helper()

	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "farmerCode,name,location\nF-001,Akua Mensah,Tamale\nF-002,田中 太郎,北海道\n"

	got, charset := readAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("農家コード,氏名\n")...)

	got, charset := readAll(t, input)
	assert.Equal(t, "農家コード,氏名\n", got)
	assert.Equal(t, encoding.UTF8, charset)
}

func TestNewUTF8Reader_Latin1(t *testing.T) {
	// "Région;Montant\n" in Windows-1252: é = 0xE9.
	latin1 := []byte{'R', 0xE9, 'g', 'i', 'o', 'n', ';', 'M', 'o', 'n', 't', 'a', 'n', 't', '\n'}

	got, _ := readAll(t, latin1)
	assert.Equal(t, "Région;Montant\n", got)
}

func TestNewUTF8Reader_ShiftJIS(t *testing.T) {
	text := "農家コード,氏名,備考\n" + strings.Repeat("F-001,たなか たろう,これは研修に参加している農家のデータです。よろしくお願いします。\n", 8)

	sjis, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(text))
	require.NoError(t, err)

	got, charset := readAll(t, sjis)
	assert.Equal(t, encoding.ShiftJIS, charset)
	assert.Equal(t, text, got)
}
