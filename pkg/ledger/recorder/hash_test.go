package recorder

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

func TestHashContent(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		expected string
	}{
		{
			name:     "empty content",
			content:  []byte{},
			expected: "",
		},
		{
			name:     "nil content",
			content:  nil,
			expected: "",
		},
		{
			name:     "scenario fragment",
			content:  []byte("[General]\nnetwork = RSUGridNetwork\n"),
			expected: computeSHA256("[General]\nnetwork = RSUGridNetwork\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HashContent(tt.content)
			if result != tt.expected {
				t.Errorf("HashContent() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestHashString(t *testing.T) {
	if got := HashString(""); got != "" {
		t.Errorf("HashString(\"\") = %q, want empty", got)
	}
	if got := HashString("seed-1-mt = 1215"); got != computeSHA256("seed-1-mt = 1215") {
		t.Errorf("HashString() = %v, want %v", got, computeSHA256("seed-1-mt = 1215"))
	}
}

func TestHashContent_HexEncoding(t *testing.T) {
	result := HashContent([]byte("test"))

	if _, err := hex.DecodeString(result); err != nil {
		t.Errorf("HashContent() returned invalid hex: %v", err)
	}

	// SHA-256 produces 32 bytes = 64 hex characters
	if len(result) != 64 {
		t.Errorf("HashContent() length = %d, want 64", len(result))
	}
}

func TestHashContent_Deterministic(t *testing.T) {
	content := []byte("sim-time-limit = 400 s")

	hash1 := HashContent(content)
	hash2 := HashContent(content)

	if hash1 != hash2 {
		t.Errorf("HashContent() not deterministic: %v vs %v", hash1, hash2)
	}
}

func TestHashFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "run-0.ini")

	content := "[General]\nnetwork = RSUGridNetwork\nsim-time-limit = 400 s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() failed: %v", err)
	}

	if want := computeSHA256(content); got != want {
		t.Errorf("HashFile() = %v, want %v", got, want)
	}

	// HashFile and HashContent must agree on identical bytes.
	if got != HashContent([]byte(content)) {
		t.Error("HashFile() disagrees with HashContent() on identical bytes")
	}
}

func TestHashFile_Missing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "does-not-exist.ini"))
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}

func BenchmarkHashContent(b *testing.B) {
	content := make([]byte, 4096)
	for i := range content {
		content[i] = byte('a' + i%26)
	}

	b.ResetTimer()
	b.SetBytes(int64(len(content)))
	for i := 0; i < b.N; i++ {
		_ = HashContent(content)
	}
}

// computeSHA256 computes the expected hex-encoded SHA-256 of a string.
func computeSHA256(content string) string {
	if content == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
