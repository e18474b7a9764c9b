package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/pitchdeck/assets"
	"github.com/ByLCY/pitchdeck/fonts"
	"github.com/ByLCY/pitchdeck/layout"
	"github.com/ByLCY/pitchdeck/renderer"
)

// BuiltinPrefix 标记通过 Options.Fonts 注入的字体来源。
const BuiltinPrefix = "built-in:"

// Renderer 通过 github.com/tdewolff/canvas 绘制布局结果。
type Renderer struct {
	baseDir string

	// 注入的资源
	fontBlobs map[string][]byte

	fontMu         sync.Mutex
	fontFamilies   map[string]*fontFamilyEntry
	fallbackFamily *canvas.FontFamily
}

var _ renderer.Backend = (*Renderer)(nil)

var transparent = color.RGBA{0, 0, 0, 0}

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Options 配置 canvas 渲染器。
type Options struct {
	// BaseDir 用于解析相对字体路径。
	BaseDir string
	// Fonts 可通过 "built-in:<name>" 引用。
	Fonts map[string][]byte
}

// NewRenderer 创建以 baseDir 解析字体路径的 canvas 渲染器。
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions 创建带注入字体的渲染器。
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		baseDir:      opts.BaseDir,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	for name, data := range opts.Fonts {
		if name == "" || len(data) == 0 {
			continue
		}
		r.fontBlobs[name] = data
	}
	return r
}

// Render 将布局结果渲染为 PDF 字节。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	applyMeta(writer, result.Meta)
	images := map[string]image.Image{}
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, page, result.Resources, images); err != nil {
			return nil, fmt.Errorf("page %d (%s): %w", i+1, page.Kind, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// LayoutLines 实现 layout.Typesetter 接口，使用贪心换行算法。
// 约定：fontSize/lineHeight 入参均为毫米（mm）。字体系统使用 pt，在边界做 mm↔pt 换算。
func (r *Renderer) LayoutLines(content string, width float64, font layout.FontResource, fontSize, lineHeight float64) ([]layout.TextLine, error) {
	face, err := r.fontFace(font, toPt(fontSize), layout.Color{})
	if err != nil {
		return nil, err
	}
	// canvas 的 TextWidth 返回 mm，与 width 直接比较
	lines := layout.WrapGreedy(content, width, face.TextWidth)
	for i := range lines {
		lines[i].Height = lineHeight
	}
	return lines, nil
}

// TextWidth 实现 layout.Measurer 接口，fontSize 单位为 mm。
func (r *Renderer) TextWidth(text string, font layout.FontResource, fontSize float64) (float64, error) {
	if text == "" {
		return 0, nil
	}
	face, err := r.fontFace(font, toPt(fontSize), layout.Color{})
	if err != nil {
		return 0, err
	}
	return face.TextWidth(text), nil
}

// drawPage 按 背景矩形 → 线条 → 图片 → 文本 的顺序绘制。
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page, resources layout.ResourceSet, images map[string]image.Image) error {
	drawRects(ctx, page.Rects)
	drawLines(ctx, page.Lines)
	if err := drawImages(ctx, page.Images, images); err != nil {
		return err
	}
	for _, tb := range page.Texts {
		fontRes := resolveFontResource(tb.Font, resources.Fonts)
		if err := r.drawTextBox(ctx, tb, fontRes); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox, fontRes layout.FontResource) error {
	// TextBox 的坐标/字号/行高均为 mm；创建字体面需要 pt，这里做一次 mm→pt。
	face, err := r.fontFace(fontRes, toPt(tb.FontSize), tb.Color)
	if err != nil {
		return err
	}

	lines := tb.Lines
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: tb.Content, Height: tb.Height}}
	}

	// 水平对齐：left（默认）/center/right，左右各留 CellPadding。
	var textAlign canvas.TextAlign
	var anchorX float64
	switch tb.Align {
	case "center":
		textAlign = canvas.Center
		anchorX = tb.X + tb.Width/2
	case "right":
		textAlign = canvas.Right
		anchorX = tb.X + tb.Width - layout.CellPadding
	default:
		textAlign = canvas.Left
		anchorX = tb.X + layout.CellPadding
	}

	cursorY := tb.Y
	for _, line := range lines {
		if line.Content != "" {
			// 基线：行中线下移 0.3 倍字号，文字在行内垂直居中
			baseline := cursorY + line.Height/2 + 0.3*tb.FontSize
			ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, line.Content, textAlign))
		}
		cursorY += line.Height
	}
	return nil
}

func drawImages(ctx *canvas.Context, boxes []layout.ImageBox, cache map[string]image.Image) error {
	for _, box := range boxes {
		if box.Path == "" || box.Width <= 0 {
			continue
		}
		img, ok := cache[box.Path]
		if !ok {
			var err error
			img, err = assets.Open(box.Path)
			if err != nil {
				return err
			}
			cache[box.Path] = img
		}
		px := float64(img.Bounds().Dx())
		if px <= 0 {
			slog.Warn("skipping empty image", "path", box.Path)
			continue
		}
		ctx.DrawImage(box.X, box.Y, img, canvas.DPMM(px/box.Width))
	}
	return nil
}

// drawLines 绘制直线列表（毫米单位）
func drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		if ln.Width <= 0 {
			continue
		}
		ctx.SetFillColor(transparent)
		ctx.SetStrokeColor(colorFromLayout(ln.Color))
		ctx.SetStrokeWidth(ln.Width)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
		ctx.DrawPath(ln.X1, ln.Y1, p)
	}
}

// drawRects 绘制填充矩形（背景、卡片、图片占位）
func drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		if rc.FillColor == nil || rc.Width <= 0 || rc.Height <= 0 {
			continue
		}
		ctx.SetFillColor(colorFromLayout(*rc.FillColor))
		ctx.SetStrokeColor(transparent)
		ctx.SetStrokeWidth(0)
		ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
	}
}

func (r *Renderer) fontFace(font layout.FontResource, size float64, col layout.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(size, colorFromLayout(col), style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(font)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := parseFontStyle(font.Style)
	familyName := font.Name
	if familyName == "" {
		familyName = "Body"
	}
	family := canvas.NewFontFamily(familyName)

	if err := r.loadFontIntoFamily(family, font, style); err != nil {
		fallback, fbStyle, fbErr := r.fallback()
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		slog.Warn("font unavailable, using fallback", "font", font.Name, "src", font.Src, "err", err)
		r.fontFamilies[key] = &fontFamilyEntry{family: fallback, style: fbStyle}
		return fallback, fbStyle, nil
	}

	entry := &fontFamilyEntry{family: family, style: style}
	r.fontFamilies[key] = entry
	return family, style, nil
}

func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, font layout.FontResource, style canvas.FontStyle) error {
	data, err := r.loadFontBytes(font)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, style)
}

func (r *Renderer) loadFontBytes(font layout.FontResource) ([]byte, error) {
	src := font.Src
	switch {
	case src == "":
		return nil, fmt.Errorf("字体 %s 缺少 src", font.Name)
	case strings.HasPrefix(src, BuiltinPrefix):
		name := strings.TrimPrefix(src, BuiltinPrefix)
		if blob, ok := r.fontBlobs[name]; ok {
			return blob, nil
		}
		return nil, fmt.Errorf("找不到内置字体资源 %s%s", BuiltinPrefix, name)
	case strings.HasPrefix(src, fonts.EmbedPrefix):
		return fonts.Load(src)
	}
	path := src
	if !filepath.IsAbs(path) && r.baseDir != "" {
		path = filepath.Join(r.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}

// fallback 调用前须持有 fontMu。
func (r *Renderer) fallback() (*canvas.FontFamily, canvas.FontStyle, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, canvas.FontRegular, nil
	}
	data, err := fonts.Load(fonts.Regular)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	family := canvas.NewFontFamily("pitchdeck-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, canvas.FontRegular, err
	}
	r.fallbackFamily = family
	return family, canvas.FontRegular, nil
}

func resolveFontResource(name string, fonts map[string]layout.FontResource) layout.FontResource {
	if font, ok := fonts[name]; ok {
		return font
	}
	if font, ok := fonts[layout.FontRegular]; ok {
		return font
	}
	return layout.FontResource{Name: name}
}

// parseFontStyle 同时接受 "B"/"I"/"BI" 简写与 "SemiBold Italic" 这类全称。
func parseFontStyle(style string) canvas.FontStyle {
	switch strings.ToUpper(style) {
	case "":
		return canvas.FontRegular
	case "B":
		return canvas.FontBold
	case "I":
		return canvas.FontRegular | canvas.FontItalic
	case "BI", "IB":
		return canvas.FontBold | canvas.FontItalic
	}
	s := strings.ToLower(style)
	var result canvas.FontStyle
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	default:
		result = canvas.FontRegular
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fontCacheKey(font layout.FontResource) string {
	return fmt.Sprintf("%s|%s|%s", font.Name, font.Src, font.Style)
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
