package main

import (
	"flag"
	"log"

	"github.com/gonewx/bubblerush/pkg/app"
	"github.com/gonewx/bubblerush/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	mode := flag.String("mode", "", "start directly in a mode: classic, survival or colourrush")
	configPath := flag.String("config", "", "path to a mode config YAML (defaults to the embedded one)")
	palettePath := flag.String("palette", "", "path to a palette YAML (defaults to the embedded one)")
	fullscreen := flag.Bool("fullscreen", false, "start in fullscreen")
	flag.Parse()

	a, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		Mode:        *mode,
		ConfigPath:  *configPath,
		PalettePath: *palettePath,
		Fullscreen:  *fullscreen,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(scenes.WindowWidth, scenes.WindowHeight)
	ebiten.SetWindowTitle("Bubble Rush")

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
