package battle_test

import (
	"archive/zip"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/jieqi/pkg/battle"
)

func sampleResults() []battle.LogResult {
	return []battle.LogResult{
		{ID: "eg001", Name: "Basic Endgame", Category: "basic", Outcome: "red_win", Moves: 15, TimeMS: 1234.5},
		{ID: "eg002", Name: "Hard Endgame", Category: "hard", Outcome: "black_win", Moves: 28, TimeMS: 2345.6},
		{ID: "eg003", Name: "Draw Endgame", Category: "medium", Outcome: "draw", Moves: 100, TimeMS: 3456.7},
	}
}

func sampleDetails() map[string]battle.LogDetail {
	return map[string]battle.LogDetail{
		"eg001": {EndgameID: "eg001", Name: "Basic Endgame", Outcome: "red_win", TotalMoves: 15},
		"eg002": {EndgameID: "eg002", Name: "Hard Endgame", Outcome: "black_win", TotalMoves: 28},
		"eg003": {EndgameID: "eg003", Name: "Draw Endgame", Outcome: "draw", TotalMoves: 100},
	}
}

func TestSaveCreatesTxtAndZipFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := battle.LogConfig{RedStrategy: "muses", BlackStrategy: "greedy", TimeLimit: 0.5, MaxMoves: 80}

	txtPath, zipPath, err := battle.Save(dir, "20260120_120000_muses_vs_greedy", cfg, sampleResults(), sampleDetails(), 120500*time.Millisecond)
	require.NoError(t, err)
	assert.FileExists(t, txtPath)
	assert.FileExists(t, zipPath)
}

func TestSaveTxtContentIncludesSummary(t *testing.T) {
	dir := t.TempDir()
	cfg := battle.LogConfig{RedStrategy: "muses", BlackStrategy: "greedy", TimeLimit: 0.5, MaxMoves: 80}

	txtPath, _, err := battle.Save(dir, "20260120_120000_muses_vs_greedy", cfg, sampleResults(), sampleDetails(), 120*time.Second)
	require.NoError(t, err)

	raw, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "Jieqi Game Log")
	assert.Contains(t, content, "muses vs greedy")
	assert.Contains(t, content, "Total:     3")
	assert.Contains(t, content, "Red Win:   1")
	assert.Contains(t, content, "Black Win: 1")
	assert.Contains(t, content, "Draw:      1")
}

func TestSaveZipContainsSummaryAndGameEntries(t *testing.T) {
	dir := t.TempDir()
	cfg := battle.LogConfig{RedStrategy: "muses", BlackStrategy: "greedy"}

	_, zipPath, err := battle.Save(dir, "20260120_120000_muses_vs_greedy", cfg, sampleResults(), sampleDetails(), 0)
	require.NoError(t, err)

	zr, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "summary.json")
	assert.Contains(t, names, "eg001.json")
	assert.Contains(t, names, "eg002.json")
	assert.Contains(t, names, "eg003.json")
}

func TestSaveEmptyResults(t *testing.T) {
	dir := t.TempDir()
	cfg := battle.LogConfig{RedStrategy: "muses", BlackStrategy: "greedy"}

	txtPath, zipPath, err := battle.Save(dir, "20260120_120000_muses_vs_greedy", cfg, nil, nil, 0)
	require.NoError(t, err)
	assert.FileExists(t, txtPath)
	assert.FileExists(t, zipPath)

	raw, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Total:     0")
}

func TestListAndSearchLogs(t *testing.T) {
	dir := t.TempDir()
	cfg := battle.LogConfig{RedStrategy: "a", BlackStrategy: "b"}

	_, _, err := battle.Save(dir, "20260115_100000_muses_vs_greedy", cfg, nil, nil, 0)
	require.NoError(t, err)
	_, _, err = battle.Save(dir, "20260118_100000_it2_vs_mcts", cfg, nil, nil, 0)
	require.NoError(t, err)
	_, _, err = battle.Save(dir, "20260120_100000_muses2_vs_muses", cfg, nil, nil, 0)
	require.NoError(t, err)

	all, err := battle.List(dir)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "20260120_100000_muses2_vs_muses", all[0].RunID)
	assert.Equal(t, "2026-01-20", all[0].Date)

	byStrategy, err := battle.Search(dir, "muses", "", "")
	require.NoError(t, err)
	assert.Len(t, byStrategy, 2)

	byDate, err := battle.Search(dir, "", "2026-01-18", "")
	require.NoError(t, err)
	assert.Len(t, byDate, 2)
}

func TestLoadSummaryAndGame(t *testing.T) {
	dir := t.TempDir()
	cfg := battle.LogConfig{RedStrategy: "test", BlackStrategy: "test"}

	_, zipPath, err := battle.Save(dir, "20260120_120000_test_vs_test", cfg, sampleResults(), sampleDetails(), 60*time.Second)
	require.NoError(t, err)

	sum, err := battle.LoadSummary(zipPath)
	require.NoError(t, err)
	assert.Equal(t, "20260120_120000_test_vs_test", sum["run_id"])
	assert.EqualValues(t, 3, sum["total_games"])

	game, err := battle.LoadGame(zipPath, "eg001")
	require.NoError(t, err)
	assert.Equal(t, "eg001", game.EndgameID)
	assert.Equal(t, "red_win", game.Outcome)
	assert.Equal(t, 15, game.TotalMoves)

	_, err = battle.LoadGame(zipPath, "nonexistent")
	assert.Error(t, err)
}
