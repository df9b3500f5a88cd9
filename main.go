package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/actionkit/config"
	"github.com/milk9111/actionkit/logging"
	"github.com/milk9111/actionkit/recipe"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	recipeName := flag.String("recipe", "patrol", "recipe to start with")
	recipeDir := flag.String("dir", "", "directory whose recipes override the embedded ones")
	watch := flag.Bool("watch", false, "reload recipes from -dir when they change")
	verbosity := flag.Int("v", 0, "log verbosity (1 info, 2 debug, 3 trace)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Setup(*verbosity, nil)
		log.Fatal().Err(err).Msg("load config")
	}
	if *recipeDir != "" {
		cfg.RecipeDir = *recipeDir
	}
	cfg.Watch = cfg.Watch || *watch
	logging.Setup(max(*verbosity, cfg.LogLevel), os.Stderr)
	recipe.SetDir(cfg.RecipeDir)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("actionkit")
	ebiten.SetTPS(cfg.TicksPerSecond)

	game, err := NewGame(cfg, *recipeName)
	if err != nil {
		log.Fatal().Err(err).Msg("start demo")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("run game")
	}
}
