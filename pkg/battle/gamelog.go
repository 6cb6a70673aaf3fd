package battle

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// LogConfig is the persisted record of the parameters a logged run was played under.
type LogConfig struct {
	RedStrategy   string  `json:"red_strategy"`
	BlackStrategy string  `json:"black_strategy"`
	TimeLimit     float64 `json:"time_limit"`
	MaxMoves      int     `json:"max_moves"`
}

// LogResult is one game's one-line summary, as listed in a run's index.
type LogResult struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Outcome  string  `json:"result"` // red_win | black_win | draw
	Moves    int     `json:"moves"`
	TimeMS   float64 `json:"time_ms"`
}

// HistoryEntry is one recorded ply, position plus move, for a logged game's detail view.
type HistoryEntry struct {
	Move     string `json:"move"`
	Position string `json:"position"`
}

// LogDetail is one game's full record.
type LogDetail struct {
	EndgameID     string         `json:"endgame_id"`
	Name          string         `json:"name"`
	Category      string         `json:"category"`
	StartPosition string         `json:"start_position"`
	Outcome       string         `json:"result"`
	TotalMoves    int            `json:"total_moves"`
	DurationMS    float64        `json:"duration_ms"`
	FinalPosition string         `json:"final_position"`
	History       []HistoryEntry `json:"history"`
}

// Entry is one run's listing row, as extracted from its archive's file name.
type Entry struct {
	RunID    string
	Date     string // YYYY-MM-DD
	Strategy string // "<red>_vs_<black>"
}

// summary is the JSON document stored as summary.json inside a run's archive.
type summary struct {
	RunID           string    `json:"run_id"`
	Config          LogConfig `json:"config"`
	TotalGames      int       `json:"total_games"`
	Results         outcomes  `json:"results"`
	DurationSeconds float64   `json:"duration_seconds"`
	Games           []LogResult `json:"games"`
}

type outcomes struct {
	RedWin   int `json:"red_win"`
	BlackWin int `json:"black_win"`
	Draw     int `json:"draw"`
}

// Save writes a run's human-readable summary (a .txt file) and its machine-readable detail
// archive (a .zip of summary.json plus one "<id>.json" per game) to dir, named "<runID>.txt"
// and "<runID>.zip".
func Save(dir, runID string, cfg LogConfig, results []LogResult, details map[string]LogDetail, duration time.Duration) (txtPath, zipPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating log dir: %w", err)
	}

	var agg outcomes
	for _, r := range results {
		switch r.Outcome {
		case "red_win":
			agg.RedWin++
		case "black_win":
			agg.BlackWin++
		default:
			agg.Draw++
		}
	}

	txtPath = filepath.Join(dir, runID+".txt")
	if err := os.WriteFile(txtPath, []byte(renderSummary(runID, cfg, results, agg, duration)), 0o644); err != nil {
		return "", "", fmt.Errorf("writing %v: %w", txtPath, err)
	}

	sum := summary{
		RunID:           runID,
		Config:          cfg,
		TotalGames:      len(results),
		Results:         agg,
		DurationSeconds: duration.Seconds(),
		Games:           results,
	}

	zipPath = filepath.Join(dir, runID+".zip")
	if err := writeArchive(zipPath, sum, details); err != nil {
		return "", "", fmt.Errorf("writing %v: %w", zipPath, err)
	}
	return txtPath, zipPath, nil
}

func renderSummary(runID string, cfg LogConfig, results []LogResult, agg outcomes, duration time.Duration) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Jieqi Game Log: %v\n", runID)
	fmt.Fprintf(&sb, "%v vs %v, time limit %.2fs, max moves %v\n", cfg.RedStrategy, cfg.BlackStrategy, cfg.TimeLimit, cfg.MaxMoves)
	fmt.Fprintf(&sb, "Duration: %v\n\n", duration)
	fmt.Fprintf(&sb, "Total:     %v\n", len(results))
	fmt.Fprintf(&sb, "Red Win:   %v\n", agg.RedWin)
	fmt.Fprintf(&sb, "Black Win: %v\n", agg.BlackWin)
	fmt.Fprintf(&sb, "Draw:      %v\n\n", agg.Draw)
	for _, r := range results {
		fmt.Fprintf(&sb, "%-12v %-10v %-10v %5v moves  %8.1fms\n", r.ID, r.Name, r.Outcome, r.Moves, r.TimeMS)
	}
	return sb.String()
}

func writeArchive(path string, sum summary, details map[string]LogDetail) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := writeJSONEntry(zw, "summary.json", sum); err != nil {
		return err
	}
	for id, d := range details {
		if err := writeJSONEntry(zw, id+".json", d); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func writeJSONEntry(zw *zip.Writer, name string, v any) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns every run archived under dir, most recent first. A missing dir is not an error:
// it simply has no runs yet.
func List(dir string) ([]Entry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.zip"))
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, m := range matches {
		e, ok := parseRunID(strings.TrimSuffix(filepath.Base(m), ".zip"))
		if ok {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].RunID > entries[j].RunID })
	return entries, nil
}

// parseRunID splits a "<YYYYMMDD>_<HHMMSS>_<red>_vs_<black>" run id into its listing fields.
func parseRunID(runID string) (Entry, bool) {
	parts := strings.SplitN(runID, "_", 3)
	if len(parts) != 3 || len(parts[0]) != 8 {
		return Entry{}, false
	}
	year, err1 := strconv.Atoi(parts[0][0:4])
	month, err2 := strconv.Atoi(parts[0][4:6])
	day, err3 := strconv.Atoi(parts[0][6:8])
	if err1 != nil || err2 != nil || err3 != nil {
		return Entry{}, false
	}
	return Entry{
		RunID:    runID,
		Date:     fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		Strategy: parts[2],
	}, true
}

// Search filters List(dir) by a case-insensitive substring of Strategy and/or an inclusive
// [dateFrom, dateTo] range (either bound may be empty to leave it open).
func Search(dir, strategy, dateFrom, dateTo string) ([]Entry, error) {
	all, err := List(dir)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, e := range all {
		if strategy != "" && !strings.Contains(strings.ToLower(e.Strategy), strings.ToLower(strategy)) {
			continue
		}
		if dateFrom != "" && e.Date < dateFrom {
			continue
		}
		if dateTo != "" && e.Date > dateTo {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// LoadSummary reads a run's summary.json from its archive.
func LoadSummary(zipPath string) (summaryDoc map[string]any, err error) {
	raw, err := readArchiveEntry(zipPath, "summary.json")
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding summary.json: %w", err)
	}
	return doc, nil
}

// LoadGame reads one game's detail (by its id within the run) from the run's archive.
func LoadGame(zipPath, id string) (LogDetail, error) {
	raw, err := readArchiveEntry(zipPath, id+".json")
	if err != nil {
		return LogDetail{}, err
	}
	var d LogDetail
	if err := json.Unmarshal(raw, &d); err != nil {
		return LogDetail{}, fmt.Errorf("decoding %v.json: %w", id, err)
	}
	return d, nil
}

func readArchiveEntry(zipPath, name string) ([]byte, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%v: no such entry in %v", name, zipPath)
}
