// Command mapgen prints a generated match map as text.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ugaemi/prophunt-server/internal/config"
	"github.com/ugaemi/prophunt-server/internal/game"
)

func main() {
	configPath := flag.String("config", "", "match config YAML (defaults when empty)")
	seed := flag.Int64("seed", 0, "map seed (0 uses the config seed, or the clock if that is 0 too)")
	cell := flag.Float64("cell", 25, "world units per character")
	spawns := flag.Int("spawns", 0, "number of spawn points to mark")
	flag.Parse()

	cfg, err := config.LoadMatch(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if *cell <= 0 {
		fmt.Fprintln(os.Stderr, "cell must be positive")
		os.Exit(2)
	}

	rng := game.NewRand(cfg.Seed)
	startT := time.Now()
	layout, err := game.GenerateMap(cfg.Arena, cfg.MapGen, rng)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	dur := time.Since(startT)

	var points []game.Vec
	if *spawns > 0 {
		points, err = game.SelectSpawns(layout, *spawns, cfg.PlayerRadius, rng)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (placed %d)\n", err, len(points))
		}
	}

	fmt.Printf("seed %d, arena %.0fx%.0f, generated in %v\n", cfg.Seed, cfg.Arena.Width, cfg.Arena.Height, dur)
	fmt.Printf("rooms %d, walls %d, doors %d\n", len(layout.Rooms), len(layout.Walls), len(layout.Doors))
	fmt.Print(render(layout, *cell, points))
}

// render draws walls as '#', doors as '+' and spawn points as 'o'.
// Each character covers a cell x cell square of the arena.
func render(layout *game.MapLayout, cell float64, points []game.Vec) string {
	cols := int(layout.Arena.Width/cell + 0.5)
	rows := int(layout.Arena.Height/cell + 0.5)
	grid := make([][]byte, rows)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(".", cols))
	}

	paint := func(r game.Rect, ch byte) {
		x0, x1 := int(r.X/cell), int((r.MaxX()-1e-9)/cell)
		y0, y1 := int(r.Y/cell), int((r.MaxY()-1e-9)/cell)
		for y := max(y0, 0); y <= min(y1, rows-1); y++ {
			for x := max(x0, 0); x <= min(x1, cols-1); x++ {
				grid[y][x] = ch
			}
		}
	}

	for _, w := range layout.Walls {
		paint(w, '#')
	}
	for _, d := range layout.Doors {
		paint(d.Rect, '+')
	}
	for _, p := range points {
		x, y := int(p.X/cell), int(p.Y/cell)
		if y >= 0 && y < rows && x >= 0 && x < cols {
			grid[y][x] = 'o'
		}
	}

	var sb strings.Builder
	border := "+" + strings.Repeat("-", cols) + "+\n"
	sb.WriteString(border)
	for _, row := range grid {
		sb.WriteByte('|')
		sb.Write(row)
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
