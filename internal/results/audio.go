package results

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// AudioFile describes a generated track in the music directory.
type AudioFile struct {
	Filename string `json:"filename"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Size     string `json:"size"`
	Bytes    int64  `json:"bytes"`
	URL      string `json:"url"`
}

// Prefixes of placeholder and test files that are never listed.
var skippedAudioPrefixes = []string{"generated_music", "POST_PROCESSOR"}

// AudioFiles lists the .wav files in musicDir, newest first by name.
// A missing directory yields an empty list.
func AudioFiles(musicDir string) ([]AudioFile, error) {
	entries, err := os.ReadDir(musicDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []AudioFile{}, nil
		}
		return nil, fmt.Errorf("reading music directory: %w", err)
	}

	files := []AudioFile{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".wav" || skippedAudio(name) {
			continue
		}

		f := AudioFile{Filename: name, Size: "Unknown", URL: "/audio/" + name}
		f.Date, f.Time = stampOf(name)
		if info, err := e.Info(); err == nil {
			f.Bytes = info.Size()
			f.Size = fmt.Sprintf("%.1f MB", float64(info.Size())/(1024*1024))
		}
		files = append(files, f)
	}

	slices.SortFunc(files, func(a, b AudioFile) int { return strings.Compare(b.Filename, a.Filename) })
	return files, nil
}

func skippedAudio(name string) bool {
	for _, p := range skippedAudioPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// stampOf reads the date and time from world_theme_2026-01-09_20-33-17.wav.
func stampOf(name string) (date, clock string) {
	parts := strings.Split(strings.TrimSuffix(name, ".wav"), "_")
	if len(parts) >= 3 {
		date = parts[2]
	}
	if len(parts) >= 4 {
		clock = strings.ReplaceAll(parts[3], "-", ":")
	}
	return date, clock
}
