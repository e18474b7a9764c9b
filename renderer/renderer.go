// Package renderer 定义输出端接口，具体后端位于子包中。
package renderer

import "github.com/ByLCY/pitchdeck/layout"

// Renderer 将布局结果输出为最终文件（PDF）。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Backend 同时负责渲染、换行与测量文本，一次构建的各阶段共用同一个实例。
type Backend interface {
	Renderer
	layout.Typesetter
	layout.Measurer
}
