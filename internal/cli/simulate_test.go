package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSimulateEndToEnd(t *testing.T) {
	tmpDir := t.TempDir()

	captionsPath := filepath.Join(tmpDir, "captions.srt")
	captionsContent := `1
00:00:00,000 --> 00:00:01,000
First

2
00:00:01,000 --> 00:00:02,500
Second

3
00:00:02,500 --> 00:00:04,000
Third
`
	if err := os.WriteFile(captionsPath, []byte(captionsContent), 0644); err != nil {
		t.Fatalf("write captions: %v", err)
	}

	scenarioPath := filepath.Join(tmpDir, "session.yaml")
	scenarioContent := `captions: captions.srt
video_id: test-video
steps:
  - at: 0
    action: position
    raw: 0
  - at: 500
    action: interact-start
  - at: 1500
    action: position
    raw: 1.5
  - at: 2000
    action: interact-end
  - at: 2600
    action: position
    raw: 2.6
  - at: 2700
    action: click
    cue: 0
`
	if err := os.WriteFile(scenarioPath, []byte(scenarioContent), 0644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	rootCmd.SetArgs([]string{"simulate", scenarioPath, "--no-prefs"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
}
