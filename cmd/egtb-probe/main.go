package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chesstools/egtb/internal/board"
	"github.com/chesstools/egtb/internal/egtb"
	"github.com/chesstools/egtb/internal/stats"
)

var (
	tableDir = flag.String("dir", "", "folder of .egtb/.egtbc endgame files")
	fen      = flag.String("fen", board.StartFEN, "position to probe, in FEN")
	memAll   = flag.Bool("memall", false, "keep every loaded file fully resident")
	preload  = flag.Bool("preload", false, "force-load every file at startup instead of on first probe")
	statsDir = flag.String("stats", "", "directory for a persistent probe-outcome counter (disabled if empty)")
)

func main() {
	flag.Parse()

	if *tableDir == "" {
		log.Fatal("egtb-probe: -dir is required")
	}

	memMode := egtb.MemSmart
	if *memAll {
		memMode = egtb.MemAll
	}

	registry := egtb.NewRegistry(memMode)
	n, err := registry.AddFolders(*tableDir)
	if err != nil {
		log.Fatalf("egtb-probe: %v", err)
	}
	log.Printf("registered %d endgame files from %s", n, *tableDir)

	loadMode := egtb.LoadOnRequest
	if *preload {
		loadMode = egtb.LoadAll
	}
	if err := registry.Preload(memMode, loadMode); err != nil {
		log.Fatalf("egtb-probe: preload: %v", err)
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("egtb-probe: parsing FEN: %v", err)
	}

	driver := egtb.NewDriver(registry)
	score, line := driver.Probe(b)

	fmt.Printf("signature: %s\n", b.Signature())
	fmt.Printf("score: %s\n", describeScore(score))
	if len(line) > 0 {
		fmt.Print("line:")
		for _, m := range line {
			fmt.Printf(" %s", m.String())
		}
		fmt.Println()
	}

	if *statsDir != "" {
		recordStats(b.Signature(), score)
	}

	os.Exit(0)
}

func recordStats(signature string, score int) {
	store, err := stats.Open(*statsDir)
	if err != nil {
		log.Printf("egtb-probe: stats store unavailable: %v", err)
		return
	}
	defer store.Close()

	outcome := stats.OutcomeDraw
	switch {
	case score == egtb.ScoreMissing, score == egtb.ScoreUnknown:
		outcome = stats.OutcomeMissing
	case score == egtb.ScoreIllegal:
		outcome = stats.OutcomeIllegal
	case score == egtb.ScoreWinning, score > 0:
		outcome = stats.OutcomeWin
	case score < 0:
		outcome = stats.OutcomeLoss
	}
	if err := store.Record(signature, outcome); err != nil {
		log.Printf("egtb-probe: recording stats: %v", err)
	}
}

func describeScore(score int) string {
	switch score {
	case egtb.ScoreMissing:
		return "not covered by any loaded table"
	case egtb.ScoreIllegal:
		return "illegal position for its material signature"
	case egtb.ScoreUnknown:
		return "table present but data unavailable"
	case egtb.ScoreDraw:
		return "draw"
	case egtb.ScoreWinning:
		return "winning (distance unresolved)"
	default:
		return fmt.Sprintf("%d", score)
	}
}
