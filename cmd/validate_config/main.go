// validate_config 校验模式配置与配色 YAML 文件
//
// 用法：
//
//	go run ./cmd/validate_config -modes configs/modes.yaml -palette configs/palettes.yaml
//
// 不带参数时校验内嵌的默认配置。
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gonewx/bubblerush/pkg/config"
	"github.com/gonewx/bubblerush/pkg/embedded"
)

func main() {
	modesPath := flag.String("modes", "", "path to a modes YAML (default: embedded)")
	palettePath := flag.String("palette", "", "path to a palette YAML (default: embedded)")
	flag.Parse()

	ok := true

	var (
		cfg *config.GameConfig
		err error
	)
	if *modesPath != "" {
		cfg, err = config.LoadGameConfigFile(*modesPath)
	} else {
		cfg, err = config.LoadGameConfig(embedded.ModesYAML())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "modes config: FAIL: %v\n", err)
		ok = false
	} else {
		fmt.Printf("modes config: OK (classic %gs, survival %gs-%gs, colour rush %d levels)\n",
			cfg.Classic.DurationSeconds,
			cfg.Survival.InitialSeconds, cfg.Survival.MaxSeconds,
			cfg.ColourRush.MaxLevel())
	}

	var palette *config.PaletteConfig
	if *palettePath != "" {
		palette, err = config.LoadPaletteConfigFile(*palettePath)
	} else {
		palette, err = config.LoadPaletteConfig(embedded.PalettesYAML())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "palette: FAIL: %v\n", err)
		ok = false
	} else {
		fmt.Printf("palette: OK (%d neon colors, %d colour rush colors)\n",
			len(palette.Neon), len(palette.Easy()))
	}

	if !ok {
		os.Exit(1)
	}
}
