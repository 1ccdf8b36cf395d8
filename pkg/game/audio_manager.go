package game

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// AudioManager 音频管理器
//
// 游戏不带任何音频素材：全部音效在启动时用正弦扫频合成为
// 16-bit 立体声 PCM 并缓存，播放时从字节创建一次性播放器。
// 音量和开关从 SettingsManager 读取；ctx 为 nil 时全部静音
// （测试环境不初始化音频设备）。
type AudioManager struct {
	ctx             *audio.Context
	settingsManager *SettingsManager
	samples         map[string][]byte
}

// NewAudioManager 创建音频管理器并合成全部音效
func NewAudioManager(ctx *audio.Context, settingsManager *SettingsManager) *AudioManager {
	am := &AudioManager{
		ctx:             ctx,
		settingsManager: settingsManager,
		samples:         make(map[string][]byte),
	}

	am.samples["pop"] = synthSweep(880, 620, 70, 0.5)
	am.samples["decoy"] = synthSweep(220, 130, 180, 0.6)
	am.samples["shatter"] = synthSweep(1400, 180, 150, 0.5)
	am.samples["tick"] = synthSweep(1320, 1320, 40, 0.35)
	am.samples["perfect"] = concatSamples(
		synthSweep(660, 660, 90, 0.5),
		synthSweep(830, 830, 90, 0.5),
		synthSweep(990, 1180, 160, 0.5),
	)
	am.samples["click"] = synthSweep(980, 740, 50, 0.4)

	log.Printf("[AudioManager] Synthesized %d sound effects", len(am.samples))
	return am
}

// Play 播放指定音效
// 未知 ID 记录警告；音效被禁用或无音频上下文时静默返回
func (am *AudioManager) Play(soundID string) {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return
	}

	data, ok := am.samples[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: unknown sound %q", soundID)
		return
	}
	if am.ctx == nil {
		return
	}

	player := am.ctx.NewPlayerFromBytes(data)
	player.SetVolume(am.soundVolume())
	player.Play()
}

// Vibrate 触觉反馈
// 桌面平台没有振动硬件，这里是空实现；接口保留给移动端构建
func (am *AudioManager) Vibrate(ms int) {
}

func (am *AudioManager) soundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}

// synthSweep 合成一段从 freqStart 扫到 freqEnd 的正弦音
// 输出 16-bit 小端立体声 PCM；包络为快攻击 + 线性衰减
func synthSweep(freqStart, freqEnd float64, durMs int, vol float64) []byte {
	n := SampleRate * durMs / 1000
	buf := make([]byte, n*4)

	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := freqStart + (freqEnd-freqStart)*t
		phase += 2 * math.Pi * freq / SampleRate

		env := t * 25
		if env > 1 {
			env = 1
		}
		env *= 1 - t

		s := int16(math.Sin(phase) * env * vol * math.MaxInt16)
		buf[i*4] = byte(s)
		buf[i*4+1] = byte(s >> 8)
		buf[i*4+2] = byte(s)
		buf[i*4+3] = byte(s >> 8)
	}
	return buf
}

// concatSamples 顺序拼接多段 PCM（和弦式音效）
func concatSamples(parts ...[]byte) []byte {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
