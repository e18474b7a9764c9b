// Package fpdfrenderer 使用 codeberg.org/go-pdf/fpdf 绘制布局结果。
// 设置了 Core 的字体使用 PDF 标准字体，文本按 cp1252 编码；其余字体以 UTF-8 TrueType 子集嵌入。
package fpdfrenderer

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/ByLCY/pitchdeck/fonts"
	"github.com/ByLCY/pitchdeck/layout"
	"github.com/ByLCY/pitchdeck/renderer"
)

// DefaultCreationDate 在 Options.CreationDate 为零值时写入文档，相同输入得到相同字节。
var DefaultCreationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const fallbackFamily = "pitchdeck-fallback"

// Options 配置 fpdf 渲染器。
type Options struct {
	// BaseDir 用于解析相对字体路径。
	BaseDir string
	// CreationDate 同时作为创建与修改日期。
	CreationDate time.Time
	// Uncompressed 不压缩内容流，便于查看。
	Uncompressed bool
}

// Renderer 使用 fpdf 绘制布局结果，并以相同的字体度量测量文本。
type Renderer struct {
	opts Options

	mu      sync.Mutex
	measure *document
}

var _ renderer.Backend = (*Renderer)(nil)

// NewRenderer 创建以 baseDir 解析字体路径的 fpdf 渲染器。
func NewRenderer(baseDir string) *Renderer {
	return NewRendererWithOptions(Options{BaseDir: baseDir})
}

// NewRendererWithOptions 按选项创建 fpdf 渲染器。
func NewRendererWithOptions(opts Options) *Renderer {
	if opts.CreationDate.IsZero() {
		opts.CreationDate = DefaultCreationDate
	}
	return &Renderer{opts: opts}
}

// family 是字体在某个 fpdf 文档中的注册信息。
type family struct {
	name  string
	style string
	core  bool
}

// document 包装一个 fpdf 实例及其已注册的字体。
type document struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	families map[string]family
}

func (r *Renderer) newDocument(w, h float64) *document {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(layout.CellPadding)
	pdf.SetCompression(!r.opts.Uncompressed)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(r.opts.CreationDate)
	pdf.SetModificationDate(r.opts.CreationDate)
	return &document{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		families: map[string]family{},
	}
}

// Render 将布局结果渲染为 PDF 字节。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	first := result.Pages[0]
	doc := r.newDocument(first.Width, first.Height)
	applyMeta(doc.pdf, result.Meta)

	for i, page := range result.Pages {
		doc.pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})
		if err := r.drawPage(doc, page, result.Resources); err != nil {
			return nil, fmt.Errorf("page %d (%s): %w", i+1, page.Kind, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(pdf *fpdf.Fpdf, meta layout.DocumentMeta) {
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetSubject(meta.Subject, true)
	pdf.SetCreator(meta.Creator, true)
	pdf.SetKeywords(strings.Join(meta.Keywords, " "), true)
}

// drawPage 按 背景矩形 → 线条 → 图片 → 文本 的顺序绘制。
func (r *Renderer) drawPage(doc *document, page layout.Page, resources layout.ResourceSet) error {
	pdf := doc.pdf
	for _, rc := range page.Rects {
		if rc.FillColor == nil || rc.Width <= 0 || rc.Height <= 0 {
			continue
		}
		pdf.SetFillColor(rc.FillColor.R, rc.FillColor.G, rc.FillColor.B)
		pdf.Rect(rc.X, rc.Y, rc.Width, rc.Height, "F")
	}

	for _, ln := range page.Lines {
		if ln.Width <= 0 {
			continue
		}
		pdf.SetDrawColor(ln.Color.R, ln.Color.G, ln.Color.B)
		pdf.SetLineWidth(ln.Width)
		pdf.Line(ln.X1, ln.Y1, ln.X2, ln.Y2)
	}

	for _, img := range page.Images {
		if img.Path == "" || img.Width <= 0 {
			continue
		}
		pdf.ImageOptions(img.Path, img.X, img.Y, img.Width, img.Height, false,
			fpdf.ImageOptions{AllowNegativePosition: true}, 0, "")
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("image %s: %w", img.Name, err)
		}
	}

	for _, tb := range page.Texts {
		font := resolveFontResource(tb.Font, resources.Fonts)
		fam, err := r.useFont(doc, font, toPt(tb.FontSize))
		if err != nil {
			return err
		}
		pdf.SetTextColor(tb.Color.R, tb.Color.G, tb.Color.B)
		lines := tb.Lines
		if len(lines) == 0 {
			lines = []layout.TextLine{{Content: tb.Content, Height: tb.Height}}
		}
		// CellFormat 默认垂直居中：基线 = y + h/2 + 0.3*字号
		y := tb.Y
		for _, line := range lines {
			pdf.SetXY(tb.X, y)
			pdf.CellFormat(tb.Width, line.Height, doc.encode(fam, line.Content), "", 0, cellAlign(tb.Align), false, 0, "")
			y += line.Height
		}
	}
	return pdf.Error()
}

// LayoutLines 实现 layout.Typesetter 接口，使用 fpdf 的字符串宽度贪心换行。
// fontSize/lineHeight 单位为 mm。
func (r *Renderer) LayoutLines(content string, width float64, font layout.FontResource, fontSize, lineHeight float64) ([]layout.TextLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.measureDoc()
	fam, err := r.useFont(doc, font, toPt(fontSize))
	if err != nil {
		return nil, err
	}
	lines := layout.WrapGreedy(content, width, func(s string) float64 {
		return doc.pdf.GetStringWidth(doc.encode(fam, s))
	})
	for i := range lines {
		lines[i].Height = lineHeight
	}
	return lines, doc.pdf.Error()
}

// TextWidth 实现 layout.Measurer 接口，fontSize 单位为 mm。
func (r *Renderer) TextWidth(text string, font layout.FontResource, fontSize float64) (float64, error) {
	if text == "" {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.measureDoc()
	fam, err := r.useFont(doc, font, toPt(fontSize))
	if err != nil {
		return 0, err
	}
	w := doc.pdf.GetStringWidth(doc.encode(fam, text))
	return w, doc.pdf.Error()
}

// measureDoc 调用前须持有 mu。
func (r *Renderer) measureDoc() *document {
	if r.measure == nil {
		r.measure = r.newDocument(210, 297)
	}
	return r.measure
}

// useFont 首次使用时在 doc 中注册字体，并以 sizePt 选中。
func (r *Renderer) useFont(doc *document, font layout.FontResource, sizePt float64) (family, error) {
	key := fontCacheKey(font)
	fam, ok := doc.families[key]
	if !ok {
		var err error
		fam, err = r.register(doc, font)
		if err != nil {
			return family{}, err
		}
		doc.families[key] = fam
	}
	doc.pdf.SetFont(fam.name, fam.style, sizePt)
	if err := doc.pdf.Error(); err != nil {
		return family{}, fmt.Errorf("font %s: %w", font.Name, err)
	}
	return fam, nil
}

func (r *Renderer) register(doc *document, font layout.FontResource) (family, error) {
	if font.Core != "" {
		return family{name: font.Core, style: coreStyle(font.Style), core: true}, nil
	}
	data, err := r.loadFontBytes(font)
	if err == nil {
		name := "pd-" + font.Name
		doc.pdf.AddUTF8FontFromBytes(name, coreStyle(font.Style), data)
		if err = doc.pdf.Error(); err == nil {
			return family{name: name, style: coreStyle(font.Style)}, nil
		}
		// fpdf 出错后不可继续使用，清除错误后回退
		doc.pdf.ClearError()
	}

	slog.Warn("font unavailable, using fallback", "font", font.Name, "src", font.Src, "err", err)
	if _, ok := doc.families[fallbackFamily]; !ok {
		data, ferr := fonts.Load(fonts.Regular)
		if ferr != nil {
			return family{}, ferr
		}
		doc.pdf.AddUTF8FontFromBytes(fallbackFamily, "", data)
		if ferr := doc.pdf.Error(); ferr != nil {
			return family{}, fmt.Errorf("load fallback font: %w", ferr)
		}
		doc.families[fallbackFamily] = family{name: fallbackFamily}
	}
	return family{name: fallbackFamily}, nil
}

func (r *Renderer) loadFontBytes(font layout.FontResource) ([]byte, error) {
	src := font.Src
	switch {
	case src == "":
		return nil, fmt.Errorf("字体 %s 缺少 src", font.Name)
	case strings.HasPrefix(src, fonts.EmbedPrefix):
		return fonts.Load(src)
	}
	path := src
	if !filepath.IsAbs(path) && r.opts.BaseDir != "" {
		path = filepath.Join(r.opts.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}

func (d *document) encode(fam family, s string) string {
	if fam.core {
		return d.tr(s)
	}
	return s
}

func resolveFontResource(name string, fonts map[string]layout.FontResource) layout.FontResource {
	if font, ok := fonts[name]; ok {
		return font
	}
	if font, ok := fonts[layout.FontRegular]; ok {
		return font
	}
	return layout.FontResource{Name: name, Core: "Helvetica"}
}

// coreStyle 将样式归一为 fpdf 的 ""、"B"、"I" 或 "BI"，也接受 "Bold Italic" 这类全称。
func coreStyle(style string) string {
	s := strings.ToUpper(strings.TrimSpace(style))
	switch s {
	case "", "B", "I", "BI":
		return s
	case "IB":
		return "BI"
	}
	out := ""
	if strings.Contains(s, "BOLD") {
		out += "B"
	}
	if strings.Contains(s, "ITALIC") || strings.Contains(s, "OBLIQUE") {
		out += "I"
	}
	return out
}

func cellAlign(align string) string {
	switch align {
	case "center":
		return "C"
	case "right":
		return "R"
	default:
		return "L"
	}
}

func fontCacheKey(font layout.FontResource) string {
	return fmt.Sprintf("%s|%s|%s|%s", font.Name, font.Src, font.Style, font.Core)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
