// Package app 提供游戏应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：组装配置、存档、音频和场景，
// 并实现 ebiten.Game 接口。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/bubblerush/pkg/config"
	"github.com/gonewx/bubblerush/pkg/embedded"
	"github.com/gonewx/bubblerush/pkg/game"
	"github.com/gonewx/bubblerush/pkg/scenes"
	"github.com/gonewx/bubblerush/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Mode 启动时直接进入的模式（"classic"/"survival"/"colourrush"），为空进主菜单
	Mode string
	// ConfigPath 外部模式配置文件路径，为空用内嵌配置
	ConfigPath string
	// PalettePath 外部配色文件路径，为空用内嵌配置
	PalettePath string
	// Fullscreen 启动时进入全屏
	Fullscreen bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	verbose      bool

	// 退出全屏后窗口大小要延迟几帧再设，让窗口管理器先就位
	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, palette, err := loadConfigs(cfg)
	if err != nil {
		return nil, err
	}

	// 存档目录不可用时降级为无持久化运行
	gdataManager, err := gdata.Open(gdata.Config{AppName: "bubblerush"})
	if err != nil {
		log.Printf("[App] Warning: persistence unavailable: %v", err)
		gdataManager = nil
	}
	settingsManager := game.NewSettingsManager(gdataManager)
	saveManager := game.NewSaveManager(gdataManager)

	audioContext := audio.NewContext(game.SampleRate)
	audioManager := game.NewAudioManager(audioContext, settingsManager)

	sceneManager := game.NewSceneManager()
	ctx := &scenes.Context{
		SceneManager: sceneManager,
		SaveManager:  saveManager,
		Settings:     settingsManager,
		Audio:        audioManager,
		Config:       gameConfig,
		Palette:      palette,
	}
	sceneManager.SetSceneFactory(func(mode types.ModeType) game.Scene {
		return scenes.NewGameScene(ctx, mode)
	})

	if mt, ok := types.ParseModeType(cfg.Mode); ok {
		log.Printf("[App] Starting directly in mode %s", mt)
		sceneManager.StartMode(mt)
	} else {
		if cfg.Mode != "" {
			log.Printf("[App] Warning: unknown mode %q, showing menu", cfg.Mode)
		}
		sceneManager.SwitchTo(scenes.NewMainMenuScene(ctx))
	}

	if cfg.Fullscreen || settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// loadConfigs 加载模式配置和配色，外部文件优先于内嵌默认值
func loadConfigs(cfg Config) (*config.GameConfig, *config.PaletteConfig, error) {
	var (
		gameConfig *config.GameConfig
		err        error
	)
	if cfg.ConfigPath != "" {
		gameConfig, err = config.LoadGameConfigFile(cfg.ConfigPath)
	} else {
		gameConfig, err = config.LoadGameConfig(embedded.ModesYAML())
	}
	if err != nil {
		return nil, nil, fmt.Errorf("加载模式配置失败: %w", err)
	}

	var palette *config.PaletteConfig
	if cfg.PalettePath != "" {
		palette, err = config.LoadPaletteConfigFile(cfg.PalettePath)
	} else {
		palette, err = config.LoadPaletteConfig(embedded.PalettesYAML())
	}
	if err != nil {
		return nil, nil, fmt.Errorf("加载配色失败: %w", err)
	}
	return gameConfig, palette, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(scenes.WindowWidth, scenes.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", scenes.WindowWidth, scenes.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return scenes.WindowWidth, scenes.WindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
