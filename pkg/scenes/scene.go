package scenes

import (
	"github.com/gonewx/bubblerush/pkg/config"
	"github.com/gonewx/bubblerush/pkg/game"
)

const (
	// WindowWidth 画布逻辑宽度（像素）
	WindowWidth = 800
	// WindowHeight 画布逻辑高度（像素）
	WindowHeight = 600
)

// Scene 是 game.Scene 的别名，场景实现统一引用这里
type Scene = game.Scene

// Context 场景共享的服务集合
// 由应用层组装一次，注入给所有场景
type Context struct {
	SceneManager *game.SceneManager
	SaveManager  *game.SaveManager
	Settings     *game.SettingsManager
	Audio        *game.AudioManager
	Config       *config.GameConfig
	Palette      *config.PaletteConfig
}
