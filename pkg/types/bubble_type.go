// Package types 定义共享的基础类型
package types

// BubbleType 定义泡泡的类型
//
// 三种类型的行为差异集中在点击分发和生命周期上：
//   - normal: 单击即破，基础得分
//   - double: 需要连续点击两次，完成后得分更高
//   - decoy:  陷阱泡泡，点击会扣分（生存模式额外扣时间）
type BubbleType int

const (
	// BubbleUnknown 未知泡泡类型
	BubbleUnknown BubbleType = iota

	BubbleNormal // 普通泡泡
	BubbleDouble // 双击泡泡
	BubbleDecoy  // 陷阱泡泡
)

// String 返回类型的字符串标识（用于配置键和日志）
func (t BubbleType) String() string {
	switch t {
	case BubbleNormal:
		return "normal"
	case BubbleDouble:
		return "double"
	case BubbleDecoy:
		return "decoy"
	default:
		return "unknown"
	}
}

// ParseBubbleType 从字符串解析泡泡类型
// 未知字符串返回 BubbleUnknown 和 false
func ParseBubbleType(s string) (BubbleType, bool) {
	switch s {
	case "normal":
		return BubbleNormal, true
	case "double":
		return BubbleDouble, true
	case "decoy":
		return BubbleDecoy, true
	default:
		return BubbleUnknown, false
	}
}

// TapsNeeded 返回该类型需要的点击次数
func (t BubbleType) TapsNeeded() int {
	if t == BubbleDouble {
		return 2
	}
	return 1
}
