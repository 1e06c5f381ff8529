// Package embedding loads pretrained word vectors and turns sentences into
// fixed-length feature vectors.
package embedding

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/Veraticus/jotbot/internal/common"
)

// Dim is the dimension of every word and sentence vector.
const Dim = 300

// Vector is a single word or sentence embedding.
type Vector []float32

const (
	maxLineBytes  = 1 << 20
	progressEvery = 100_000
)

// Store maps lowercased words to their vectors. It is read-only after load
// and safe for concurrent use.
type Store struct {
	vectors map[string]Vector
}

// LoadStats describes what a load accepted and rejected.
type LoadStats struct {
	Lines   int
	Words   int
	Skipped int
}

// NewStore builds a store from an in-memory table. Vectors with the wrong
// dimension are ignored.
func NewStore(vectors map[string]Vector) *Store {
	s := &Store{vectors: make(map[string]Vector, len(vectors))}
	for word, vec := range vectors {
		if len(vec) != Dim {
			continue
		}
		s.vectors[strings.ToLower(word)] = vec
	}
	return s
}

// Load reads a word-vector text file: a header line followed by
// "word f1 ... f300" lines.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrEmbeddingResource, err)
	}
	defer func() { _ = f.Close() }()

	slog.Info("Loading word embeddings", "path", path)

	store, stats, err := Read(f)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded word embeddings",
		"path", path,
		"words", stats.Words,
		"skipped_lines", stats.Skipped)

	return store, nil
}

// Read parses embeddings from r. The first line is a header and is skipped.
// Lines without exactly Dim floats after the word are skipped.
func Read(r io.Reader) (*Store, LoadStats, error) {
	var stats LoadStats
	vectors := make(map[string]Vector)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		stats.Lines++

		word, vec, ok := parseLine(scanner.Text())
		if !ok {
			stats.Skipped++
			continue
		}
		vectors[word] = vec

		if stats.Lines%progressEvery == 0 {
			slog.Debug("Embedding load progress", "lines", stats.Lines, "words", len(vectors))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("%w: %w", common.ErrEmbeddingResource, err)
	}

	stats.Words = len(vectors)
	return &Store{vectors: vectors}, stats, nil
}

func parseLine(line string) (string, Vector, bool) {
	fields := strings.Fields(line)
	if len(fields) != Dim+1 {
		return "", nil, false
	}

	vec := make(Vector, Dim)
	for i, field := range fields[1:] {
		f, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return "", nil, false
		}
		vec[i] = float32(f)
	}

	return strings.ToLower(fields[0]), vec, true
}

// Lookup returns the vector for word, if known. The word must already be
// lowercased.
func (s *Store) Lookup(word string) (Vector, bool) {
	vec, ok := s.vectors[word]
	return vec, ok
}

// Len returns the number of known words.
func (s *Store) Len() int {
	return len(s.vectors)
}
