package input

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"gotest.tools/v3/assert"
)

const testInput = "0x2a\n\n  5 \n0b1010\n"

func readAll(t *testing.T, stream io.Reader) string {
	t.Helper()

	decompressed, err := Decompress(stream)
	assert.NilError(t, err)

	all, err := io.ReadAll(decompressed)
	assert.NilError(t, err)
	assert.NilError(t, decompressed.Close())

	return string(all)
}

func TestDecompressEmpty(t *testing.T) {
	assert.Equal(t, "", readAll(t, bytes.NewReader([]byte{})))
}

func TestDecompressOneByte(t *testing.T) {
	assert.Equal(t, "7", readAll(t, strings.NewReader("7")))
}

func TestDecompressPlain(t *testing.T) {
	assert.Equal(t, testInput, readAll(t, strings.NewReader(testInput)))
}

func TestDecompressGzip(t *testing.T) {
	var compressed bytes.Buffer
	writer := gzip.NewWriter(&compressed)
	_, err := writer.Write([]byte(testInput))
	assert.NilError(t, err)
	assert.NilError(t, writer.Close())

	assert.Equal(t, testInput, readAll(t, &compressed))
}

func TestDecompressZstd(t *testing.T) {
	var compressed bytes.Buffer
	writer, err := zstd.NewWriter(&compressed)
	assert.NilError(t, err)
	_, err = writer.Write([]byte(testInput))
	assert.NilError(t, err)
	assert.NilError(t, writer.Close())

	assert.Equal(t, testInput, readAll(t, &compressed))
}

func TestDecompressXz(t *testing.T) {
	var compressed bytes.Buffer
	writer, err := xz.NewWriter(&compressed)
	assert.NilError(t, err)
	_, err = writer.Write([]byte(testInput))
	assert.NilError(t, err)
	assert.NilError(t, writer.Close())

	assert.Equal(t, testInput, readAll(t, &compressed))
}

func TestValues(t *testing.T) {
	values, err := Values(strings.NewReader(testInput))
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{"0x2a", "5", "0b1010"}, values)
}

func TestValuesEmpty(t *testing.T) {
	values, err := Values(strings.NewReader("\n \n"))
	assert.NilError(t, err)
	assert.Equal(t, 0, len(values))
}

func TestValuesLastLineWithoutNewline(t *testing.T) {
	values, err := Values(strings.NewReader("1\n2"))
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{"1", "2"}, values)
}

// Bit-strings have no length limit
func TestValuesLongLine(t *testing.T) {
	long := strings.Repeat("1", 70_000)

	values, err := Values(strings.NewReader(long + "\n0\n"))
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{long, "0"}, values)
}
