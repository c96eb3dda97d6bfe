package promo

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped code lists from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based code list loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "promo-loader").Logger(),
	}
}

// Load reads a gzipped code list and returns a Set. The file is expected
// to contain one code per line.
func (l *fileLoader) Load(ctx context.Context, path string) (*Set, error) {
	l.logger.Info().Str("file", path).Msg("loading promo code list")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open code list")
		return nil, fmt.Errorf("failed to open code list %s: %w", path, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", path, err)
	}
	defer gzipReader.Close()

	set, err := readCodes(ctx, gzipReader)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("error reading code list")
		return nil, fmt.Errorf("error reading code list %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("size", set.Size()).
		Msg("promo code list loaded")

	return set, nil
}

// readCodes scans one code per line into a Set, checking for context
// cancellation periodically.
func readCodes(ctx context.Context, reader io.Reader) (*Set, error) {
	set := NewSet(1 << 16)

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineCount := 0
	for scanner.Scan() {
		if lineCount%100_000 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			set.Add(line)
			lineCount++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return set, nil
}
