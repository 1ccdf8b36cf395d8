package types

// ModeType 定义游戏模式
type ModeType int

const (
	// ModeUnknown 未知模式
	ModeUnknown ModeType = iota

	ModeClassic    // 经典模式：固定倒计时
	ModeSurvival   // 生存模式：可延长倒计时 + 难度递增
	ModeColourRush // 色彩冲刺：按目标颜色点击 + 连击倍率
)

// String 返回模式的注册键（用于配置和存档）
func (m ModeType) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeSurvival:
		return "survival"
	case ModeColourRush:
		return "colourrush"
	default:
		return "unknown"
	}
}

// ParseModeType 从注册键解析模式
func ParseModeType(s string) (ModeType, bool) {
	switch s {
	case "classic":
		return ModeClassic, true
	case "survival":
		return ModeSurvival, true
	case "colourrush":
		return ModeColourRush, true
	default:
		return ModeUnknown, false
	}
}

// AllModes 返回全部可玩模式（菜单顺序）
func AllModes() []ModeType {
	return []ModeType{ModeClassic, ModeSurvival, ModeColourRush}
}
