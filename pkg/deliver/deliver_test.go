package deliver

import (
	"archive/zip"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/giftring/pkg/pairing"
)

func TestWriteArchives(t *testing.T) {
	dir := t.TempDir()
	names := []string{"Alice Smith", "bob", "carol"}
	pairs := pairing.Pairing{
		"Alice Smith": "bob",
		"bob":         "carol",
		"carol":       "Alice Smith",
	}

	written, err := WriteArchives(names, pairs, Options{
		Dir:    dir,
		DrawID: "test-draw",
		Rand:   rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("WriteArchives: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("wrote %d archives, want 3", len(written))
	}

	// Spaces in participant names become underscores in archive names.
	want := filepath.Join(dir, "Alice_Smith.zip")
	if written[0] != want {
		t.Errorf("archive path = %s, want %s", written[0], want)
	}

	sizes := make(map[int64]bool)
	for i, name := range names {
		content, size := readArchive(t, written[i], "test-draw-assignment.txt")
		sizes[size] = true

		// First line is the pick.
		lines := strings.SplitN(content, "\n", 2)
		if lines[0] != pairs[name] {
			t.Errorf("%s: pick = %q, want %q", name, lines[0], pairs[name])
		}
		if !strings.Contains(content, "Secret Padding: ") {
			t.Errorf("%s: missing padding marker", name)
		}
	}

	// Every inner file is padded to the same length, so size leaks nothing.
	if len(sizes) != 1 {
		t.Errorf("inner file sizes differ: %v", sizes)
	}
}

func TestWriteArchivesMissingPick(t *testing.T) {
	_, err := WriteArchives([]string{"alice"}, pairing.Pairing{}, Options{
		Dir:  t.TempDir(),
		Rand: rand.New(rand.NewSource(1)),
	})
	if err == nil {
		t.Fatal("expected error for missing pick")
	}
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bob", "bob.zip"},
		{"Alice Smith", "Alice_Smith.zip"},
		{"Jan van der Berg", "Jan_van_der_Berg.zip"},
	}
	for _, tt := range tests {
		if got := ArchiveName(tt.in); got != tt.want {
			t.Errorf("ArchiveName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPadLength(t *testing.T) {
	pairs := pairing.Pairing{"a": "bob", "b": "christopher", "c": "a"}
	if got := padLength(pairs); got != len("christopher")+padSlack {
		t.Errorf("padLength = %d, want %d", got, len("christopher")+padSlack)
	}
}

// readArchive opens a ZIP and returns the named entry's content and
// uncompressed size.
func readArchive(t *testing.T, path, entry string) (string, int64) {
	t.Helper()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Fatalf("%s is empty", path)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != entry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", entry, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read entry %s: %v", entry, err)
		}
		return string(data), int64(len(data))
	}
	t.Fatalf("entry %s not found in %s", entry, path)
	return "", 0
}
