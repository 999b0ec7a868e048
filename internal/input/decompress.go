package input

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
	"github.com/ulikunitz/xz"
)

var gzipMagic = []byte{0x1f, 0x8b}
var bzip2Magic = []byte{0x42, 0x5a, 0x68}
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
var xzMagic = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}

// Decompress sniffs the stream for a known compression format and returns a
// reader producing the decompressed bytes. Uncompressed streams are returned
// unchanged.
//
// Closing the returned reader does not close stream.
func Decompress(stream io.Reader) (io.ReadCloser, error) {
	buffered := bufio.NewReader(stream)

	// Peek returns what it has together with io.EOF for short streams, and
	// that's fine, a short stream just won't match any of the magics
	firstBytes, err := buffered.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to sniff input compression: %w", err)
	}

	switch {
	case bytes.HasPrefix(firstBytes, gzipMagic):
		log.Debug("Input is gzip compressed")
		reader, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, err
		}
		return reader, nil

	case bytes.HasPrefix(firstBytes, zstdMagic):
		log.Debug("Input is zstd compressed")
		decoder, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, err
		}
		return decoder.IOReadCloser(), nil

	case bytes.HasPrefix(firstBytes, bzip2Magic):
		log.Debug("Input is bzip2 compressed")
		return io.NopCloser(bzip2.NewReader(buffered)), nil

	case bytes.HasPrefix(firstBytes, xzMagic):
		log.Debug("Input is xz compressed")
		reader, err := xz.NewReader(buffered)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(reader), nil
	}

	log.Trace("Input is assumed to be uncompressed")
	return io.NopCloser(buffered), nil
}

// Values returns the non-blank lines of the stream, with surrounding
// whitespace trimmed. Lines can be any length.
func Values(stream io.Reader) ([]string, error) {
	var values []string

	reader := bufio.NewReader(stream)
	for {
		line, err := reader.ReadString('\n')

		// A last line without a trailing newline comes together with io.EOF
		line = strings.TrimSpace(line)
		if len(line) > 0 {
			values = append(values, line)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
	}

	log.Debugf("Read %d values from input", len(values))
	return values, nil
}
