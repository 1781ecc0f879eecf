package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"time"
)

// RepairReport summarizes a repair pass over a JSONL file.
type RepairReport struct {
	ValidLines     int
	FixedLines     int
	CorruptedLines int
	BackupPath     string
	CorruptedPath  string
}

// Changed reports whether the repair pass rewrote the file.
func (r RepairReport) Changed() bool {
	return r.FixedLines > 0 || r.CorruptedLines > 0
}

var (
	trailingObjectComma = regexp.MustCompile(`,\s*}`)
	trailingArrayComma  = regexp.MustCompile(`,\s*\]`)
)

// RepairFile scans a JSONL file for corrupt lines. Valid lines are kept as-is,
// lines with trailing-comma defects are fixed in place, and unrepairable
// lines are moved to a <path>.corrupted side file. A timestamped backup of
// the original file is written before any modification. The file itself is
// only rewritten when something changed.
func RepairFile(path string) (RepairReport, error) {
	report := RepairReport{}

	data, err := os.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("failed to read %s: %w", path, err)
	}

	report.BackupPath = fmt.Sprintf("%s.bak.%s", path, time.Now().Format("20060102150405"))
	if err := os.WriteFile(report.BackupPath, data, 0644); err != nil {
		return report, fmt.Errorf("failed to write backup %s: %w", report.BackupPath, err)
	}

	var kept bytes.Buffer
	var corrupted bytes.Buffer

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		if json.Valid(raw) {
			kept.Write(raw)
			kept.WriteByte('\n')
			report.ValidLines++
			continue
		}

		if fixed, ok := repairLine(raw); ok {
			kept.Write(fixed)
			kept.WriteByte('\n')
			report.FixedLines++
			slog.Info("repaired corrupt record", "path", path, "line", line)
			continue
		}

		fmt.Fprintf(&corrupted, "# Line %d\n%s\n\n", line, raw)
		report.CorruptedLines++
		slog.Warn("unrepairable record removed", "path", path, "line", line)
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("failed to scan %s: %w", path, err)
	}

	if !report.Changed() {
		return report, nil
	}

	if report.CorruptedLines > 0 {
		report.CorruptedPath = path + ".corrupted"
		if err := os.WriteFile(report.CorruptedPath, corrupted.Bytes(), 0644); err != nil {
			return report, fmt.Errorf("failed to write corrupted lines to %s: %w", report.CorruptedPath, err)
		}
	}

	if err := os.WriteFile(path, kept.Bytes(), 0644); err != nil {
		return report, fmt.Errorf("failed to rewrite %s: %w", path, err)
	}
	return report, nil
}

// repairLine attempts to fix common JSON defects: trailing commas in objects
// and arrays. Returns the fixed line and true when the result parses.
func repairLine(raw []byte) ([]byte, bool) {
	fixed := trailingObjectComma.ReplaceAll(raw, []byte("}"))
	fixed = trailingArrayComma.ReplaceAll(fixed, []byte("]"))
	if json.Valid(fixed) {
		return fixed, true
	}
	return nil, false
}
