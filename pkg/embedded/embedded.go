// Package embedded 提供嵌入配置的统一访问接口
//
// 默认的 YAML 配置直接嵌入在本包目录下（config/），
// 二进制无需携带任何外部文件即可运行。
package embedded

import "embed"

//go:embed config/modes.yaml config/palettes.yaml
var configFS embed.FS

// ModesYAML 返回嵌入的游戏模式默认配置
func ModesYAML() []byte {
	data, err := configFS.ReadFile("config/modes.yaml")
	if err != nil {
		// 嵌入文件在编译期固定，读取失败属于构建损坏
		panic("embedded: config/modes.yaml missing: " + err.Error())
	}
	return data
}

// PalettesYAML 返回嵌入的调色板默认配置
func PalettesYAML() []byte {
	data, err := configFS.ReadFile("config/palettes.yaml")
	if err != nil {
		panic("embedded: config/palettes.yaml missing: " + err.Error())
	}
	return data
}
