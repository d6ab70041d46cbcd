package renderer

import (
	"github.com/ByLCY/staffdoc/layout"
	"github.com/ByLCY/staffdoc/record"
)

// Renderer 将文档模型输出为最终文件（PDF 或 Word）。
// Render 返回生成的二进制数据以及可能的错误；写文件由调用方负责。
type Renderer interface {
	Format() record.Format
	Render(doc *layout.Document) ([]byte, error)
}
