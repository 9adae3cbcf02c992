// Package deliver writes per-participant output archives for a draw.
//
// Each participant gets a ZIP file named after them containing a single text
// file with the name of their pick. Every text file is padded to the same
// length with random characters, so neither the archive name contents nor the
// file size reveals who was picked.
package deliver

import (
	"archive/zip"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/giftring/pkg/errors"
	"github.com/matzehuels/giftring/pkg/pairing"
)

// padChars is the alphabet used for secrecy padding.
const padChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890+/="

// padSlack is added to the longest pick so even the longest name gets some
// padding.
const padSlack = 5

// Options configures archive writing.
type Options struct {
	// Dir is the output directory. Empty means the current directory.
	Dir string

	// DrawID names the assignment file inside each archive, so repeated
	// draws do not produce colliding inner filenames.
	DrawID string

	// Rand is the random source for padding characters. Required.
	Rand *rand.Rand
}

// WriteArchives writes one ZIP per participant and returns the paths written,
// in participant order of names.
func WriteArchives(names []string, pairs pairing.Pairing, opts Options) ([]string, error) {
	padTo := padLength(pairs)

	written := make([]string, 0, len(names))
	for _, name := range names {
		pick, ok := pairs[name]
		if !ok {
			return written, errors.New(errors.ErrCodeInternal, "no pick for participant %q", name)
		}
		path := filepath.Join(opts.Dir, ArchiveName(name))
		if err := writeArchive(path, opts.DrawID, pick, padTo, opts.Rand); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// ArchiveName returns the ZIP filename for a participant, with spaces
// replaced by underscores.
func ArchiveName(name string) string {
	return strings.ReplaceAll(name, " ", "_") + ".zip"
}

// padLength returns the uniform content length target: the longest pick plus
// a fixed slack, so file sizes leak nothing about the pick inside.
func padLength(pairs pairing.Pairing) int {
	longest := 0
	for _, pick := range pairs {
		if len(pick) > longest {
			longest = len(pick)
		}
	}
	return longest + padSlack
}

// writeArchive creates a single participant archive at path.
func writeArchive(path, drawID, pick string, padTo int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	inner, err := zw.Create(fmt.Sprintf("%s-assignment.txt", drawID))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create entry in %s", path)
	}

	var sb strings.Builder
	sb.WriteString(pick)
	sb.WriteByte('\n')
	sb.WriteString("Secret Padding: ")
	for i := len(pick) + 1; i < padTo; i++ {
		sb.WriteByte(padChars[rng.Intn(len(padChars))])
	}
	sb.WriteByte('\n')

	if _, err := inner.Write([]byte(sb.String())); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write entry in %s", path)
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "finalize %s", path)
	}
	return nil
}
