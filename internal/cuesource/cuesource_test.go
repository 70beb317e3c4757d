package cuesource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSRT(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
Final caption.
`
	track, err := LoadSRT(strings.NewReader(content))
	if err != nil {
		t.Fatalf("LoadSRT failed: %v", err)
	}
	if track.Len() != 3 {
		t.Fatalf("Len = %d, want 3", track.Len())
	}
	if got := track.Start(0); got != 1000 {
		t.Errorf("cue 0 start = %dms, want 1000", got)
	}
	if got := track.Start(1); got != 5500 {
		t.Errorf("cue 1 start = %dms, want 5500", got)
	}
	if got := track.Cue(1).Text; got != "This is a test.\nWith multiple lines." {
		t.Errorf("cue 1 text = %q", got)
	}
	if got := track.Cue(2).Text; got != "Final caption." {
		t.Errorf("cue 2 text = %q", got)
	}
}

func TestLoadSRTWithBOM(t *testing.T) {
	content := "\ufeff1\n00:00:01,000 --> 00:00:02,000\nHi\n"
	track, err := LoadSRT(strings.NewReader(content))
	if err != nil {
		t.Fatalf("LoadSRT failed: %v", err)
	}
	if track.Len() != 1 {
		t.Fatalf("Len = %d, want 1", track.Len())
	}
}

func TestLoadSRTEmpty(t *testing.T) {
	track, err := LoadSRT(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadSRT failed: %v", err)
	}
	if track.Len() != 0 {
		t.Errorf("Len = %d, want 0 for empty input", track.Len())
	}
}

func TestLoadVTT(t *testing.T) {
	content := `WEBVTT

NOTE this block is skipped

1
00:00:01.000 --> 00:00:04.000
Hello, world!

00:00:05.500 --> 00:00:08.200
No identifier here.

02:30.000 --> 02:31.000
Short timestamps too.
`
	track, err := LoadVTT(strings.NewReader(content))
	if err != nil {
		t.Fatalf("LoadVTT failed: %v", err)
	}
	if track.Len() != 3 {
		t.Fatalf("Len = %d, want 3", track.Len())
	}
	if got := track.Start(0); got != 1000 {
		t.Errorf("cue 0 start = %dms, want 1000", got)
	}
	if got := track.Start(2); got != 150000 {
		t.Errorf("cue 2 start = %dms, want 150000", got)
	}
	if got := track.Cue(1).Text; got != "No identifier here." {
		t.Errorf("cue 1 text = %q", got)
	}
}

func TestLoadUnorderedFileStillBuildsTrack(t *testing.T) {
	content := `1
00:00:10,000 --> 00:00:11,000
Second

2
00:00:01,000 --> 00:00:02,000
First
`
	track, err := LoadSRT(strings.NewReader(content))
	if err != nil {
		t.Fatalf("LoadSRT failed: %v", err)
	}
	if track.Start(0) != 1000 || track.Start(1) != 10000 {
		t.Errorf("starts = [%d %d], want sorted [1000 10000]",
			track.Start(0), track.Start(1))
	}
	if track.Cue(0).Text != "First" {
		t.Errorf("cue 0 text = %q, want %q", track.Cue(0).Text, "First")
	}
}

func TestLoadByExtension(t *testing.T) {
	tmpDir := t.TempDir()

	srtPath := filepath.Join(tmpDir, "test.srt")
	if err := os.WriteFile(srtPath, []byte("1\n00:00:01,000 --> 00:00:02,000\nHi\n"), 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	track, err := Load(srtPath)
	if err != nil {
		t.Fatalf("Load(.srt) failed: %v", err)
	}
	if track.Len() != 1 {
		t.Errorf("Len = %d, want 1", track.Len())
	}

	if _, err := Load(filepath.Join(tmpDir, "missing.srt")); err == nil {
		t.Error("expected error for missing file")
	}

	badPath := filepath.Join(tmpDir, "test.ass")
	if err := os.WriteFile(badPath, []byte("x"), 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	if _, err := Load(badPath); err == nil {
		t.Error("expected error for unsupported format")
	}
}
