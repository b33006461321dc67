package palette

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Load reads a palette file. The format is chosen by extension:
// .json is a top-level array of [r,g,b] integer triples, .csv is one
// "r,g,b" line per color with no header row.
func Load(path string) (Palette, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported palette file format: %s", path)
	}
}

func loadJSON(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	var triples [][]int
	if err := json.Unmarshal(data, &triples); err != nil {
		return nil, fmt.Errorf("parse palette %s: %w", path, err)
	}
	p := make(Palette, 0, len(triples))
	for i, t := range triples {
		c, err := colorFromTriple(t)
		if err != nil {
			return nil, fmt.Errorf("palette %s entry %d: %w", path, i, err)
		}
		p = append(p, c)
	}
	return finish(p, path)
}

func loadCSV(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	defer f.Close()

	var p Palette
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		parts := strings.Split(text, ",")
		if len(parts) < 3 {
			return nil, fmt.Errorf("palette %s line %d: want r,g,b", path, line)
		}
		triple := make([]int, 3)
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil {
				return nil, fmt.Errorf("palette %s line %d: %w", path, line, err)
			}
			triple[i] = v
		}
		c, err := colorFromTriple(triple)
		if err != nil {
			return nil, fmt.Errorf("palette %s line %d: %w", path, line, err)
		}
		p = append(p, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read palette %s: %w", path, err)
	}
	return finish(p, path)
}

func colorFromTriple(t []int) (Color, error) {
	if len(t) < 3 {
		return Color{}, fmt.Errorf("want 3 channels, got %d", len(t))
	}
	for _, v := range t[:3] {
		if v < 0 || v > 255 {
			return Color{}, fmt.Errorf("channel %d out of range 0-255", v)
		}
	}
	return Color{R: uint8(t[0]), G: uint8(t[1]), B: uint8(t[2])}, nil
}

// finish drops duplicate entries (first occurrence wins, preserving order)
// and rejects empty palettes.
func finish(p Palette, path string) (Palette, error) {
	seen := make(map[Color]bool, len(p))
	out := p[:0]
	for _, c := range p {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("palette %s has no colors", path)
	}
	return out, nil
}
