package layout

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/google/uuid"

	"github.com/ByLCY/pitchdeck/assets"
	"github.com/ByLCY/pitchdeck/dsl"
)

// slideKinds maps a slide keyword to its composer.
var slideKinds = map[string]func(*slideContext, slideSpec) error{
	"problem":  composeProblem,
	"solution": composeSolution,
	"bullets":  composeBullets,
	"stats":    composeStats,
	"cards":    composeCards,
}

// SlideKinds lists the slide keywords a deck may use.
func SlideKinds() []string {
	out := make([]string, 0, len(slideKinds))
	for k := range slideKinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Build lays out every section of deck, one page per slide (card slides may
// continue onto extra pages).
func Build(deck *dsl.Deck, opts BuildOptions) (*Result, error) {
	if deck == nil {
		return nil, fmt.Errorf("deck is nil")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: missing Typesetter")
	}

	theme := opts.Theme
	if theme.PageWidth <= 0 || theme.PageHeight <= 0 {
		theme = DefaultTheme()
	}
	measurer := opts.Measurer
	if measurer == nil {
		if m, ok := opts.Typesetter.(Measurer); ok {
			measurer = m
		}
	}
	prober := opts.Assets
	if prober == nil {
		prober = assets.NewResolver("")
	}

	ctx := &slideContext{
		theme:      theme,
		typesetter: opts.Typesetter,
		estimator:  Estimator{Measurer: measurer, Fudge: theme.WrapFudge},
		assets:     prober,
		data:       opts.Data,
		collector:  &pageCollector{width: theme.PageWidth, height: theme.PageHeight},
	}

	for _, section := range deck.Sections {
		switch {
		case section.Cover != nil:
			spec, err := parseCover(section.Cover)
			if err != nil {
				return nil, err
			}
			if err := composeCover(ctx, spec); err != nil {
				return nil, fmt.Errorf("cover: %w", err)
			}
		case section.Slide != nil:
			spec, err := parseSlide(section.Slide)
			if err != nil {
				return nil, err
			}
			compose := slideKinds[spec.kind]
			if err := compose(ctx, spec); err != nil {
				return nil, fmt.Errorf("slide %q: %w", spec.title, err)
			}
			slog.Debug("slide laid out", "id", spec.kind, "title", spec.title, "pages", len(ctx.collector.accs))
		}
	}

	pages := ctx.collector.pages()
	if len(pages) == 0 {
		return nil, fmt.Errorf("deck %s has no cover or slides", deck.Name)
	}

	return &Result{
		Pages:     pages,
		Resources: theme.resources(),
		Meta:      collectMeta(deck),
	}, nil
}

func parseCover(sec *dsl.CoverSection) (coverSpec, error) {
	spec := coverSpec{logoMissing: MissingSkip}
	if sec.Block == nil {
		return spec, nil
	}
	for _, stmt := range sec.Block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		val := valueToString(stmt.Assignment.Value)
		switch strings.ToLower(stmt.Assignment.Key) {
		case "logo":
			spec.logo = val
		case "title":
			spec.title = val
		case "subtitle":
			spec.subtitle = val
		case "footer":
			spec.footer = val
		case "missing":
			policy, err := parseMissing(val)
			if err != nil {
				return spec, fmt.Errorf("%s: cover: %w", sec.Pos, err)
			}
			spec.logoMissing = policy
		default:
			return spec, fmt.Errorf("%s: cover: unknown property %q", sec.Pos, stmt.Assignment.Key)
		}
	}
	return spec, nil
}

func parseSlide(sec *dsl.SlideSection) (slideSpec, error) {
	kind := strings.ToLower(sec.Kind)
	if _, ok := slideKinds[kind]; !ok {
		msg := fmt.Sprintf("%s: unknown slide kind %q", sec.Pos, sec.Kind)
		if s := suggest(kind, SlideKinds()); s != "" {
			msg += fmt.Sprintf(", did you mean %q?", s)
		}
		return slideSpec{}, fmt.Errorf("%s", msg)
	}

	spec := slideSpec{
		kind:    kind,
		title:   sec.Title(),
		attrs:   parseArgs(sec.Args),
		missing: MissingPlaceholder,
	}
	var stmts []*dsl.Statement
	if sec.Block != nil {
		stmts = sec.Block.Statements
	}
	for _, stmt := range stmts {
		switch {
		case stmt.Text != nil:
			spec.lines = append(spec.lines, string(stmt.Text.Value))
		case stmt.Assignment != nil:
			spec.attrs[stmt.Assignment.Key] = valueToString(stmt.Assignment.Value)
		case stmt.Command != nil:
			cmd := stmt.Command
			switch cmd.Name {
			case "block":
				if len(cmd.Args) < 2 {
					return spec, fmt.Errorf("%s: block needs an icon and a title", cmd.Pos)
				}
				spec.blocks = append(spec.blocks, problemBlock{
					icon:    cmd.Args[0].Value,
					title:   cmd.Args[1].Value,
					bullets: blockLines(cmd.Block),
				})
			case "stat":
				if len(cmd.Args) < 2 {
					return spec, fmt.Errorf("%s: stat needs a number and a caption", cmd.Pos)
				}
				spec.stats = append(spec.stats, statItem{number: cmd.Args[0].Value, text: cmd.Args[1].Value})
			default:
				return spec, fmt.Errorf("%s: unknown statement %q in %s slide", cmd.Pos, cmd.Name, kind)
			}
		}
	}
	if v, ok := spec.attrs["missing"]; ok {
		policy, err := parseMissing(v)
		if err != nil {
			return spec, fmt.Errorf("%s: slide %q: %w", sec.Pos, spec.title, err)
		}
		spec.missing = policy
	}
	return spec, nil
}

// parseArgs reads `key value` pairs that follow the slide title.
func parseArgs(args []*dsl.Lexeme) map[string]string {
	result := map[string]string{}
	cursor := 0
	if len(args) > 0 && args[0].Type == "String" {
		cursor = 1
	}
	for cursor < len(args)-1 {
		result[args[cursor].Value] = args[cursor+1].Value
		cursor += 2
	}
	return result
}

func parseMissing(v string) (MissingPolicy, error) {
	switch MissingPolicy(strings.ToLower(v)) {
	case MissingSkip:
		return MissingSkip, nil
	case MissingPlaceholder:
		return MissingPlaceholder, nil
	default:
		return "", fmt.Errorf("missing must be %q or %q, got %q", MissingSkip, MissingPlaceholder, v)
	}
}

func blockLines(block *dsl.Block) []string {
	if block == nil {
		return nil
	}
	var out []string
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			out = append(out, string(stmt.Text.Value))
		}
	}
	return out
}

func collectMeta(deck *dsl.Deck) DocumentMeta {
	meta := DocumentMeta{
		Title:   deck.Name,
		Creator: "pitchdeck",
	}
	var fingerprint strings.Builder
	fingerprint.WriteString(deck.Name + "/" + deck.Version)
	for _, section := range deck.Sections {
		if section.Slide != nil {
			fingerprint.WriteString("|" + section.Slide.Kind + ":" + section.Slide.Title())
		}
		if section.Meta == nil || section.Meta.Block == nil {
			continue
		}
		for _, stmt := range section.Meta.Block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = valueToString(stmt.Assignment.Value)
			case "author":
				meta.Author = valueToString(stmt.Assignment.Value)
			case "subject":
				meta.Subject = valueToString(stmt.Assignment.Value)
			case "creator":
				meta.Creator = valueToString(stmt.Assignment.Value)
			case "keywords":
				meta.Keywords = valueToStringSlice(stmt.Assignment.Value)
			}
		}
	}
	// Name-based so that rebuilding the same deck yields the same ID.
	meta.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pitchdeck:"+fingerprint.String())).String()
	return meta
}

// suggest returns the candidate closest to name, if any is reasonably close.
func suggest(name string, candidates []string) string {
	best, bestScore := "", 0.5
	for _, c := range candidates {
		if score := strutil.Similarity(name, c, metrics.NewLevenshtein()); score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Expr != nil:
		return val.Expr.String()
	default:
		return ""
	}
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array != nil {
		out := make([]string, 0, len(val.Array.Values))
		for _, item := range val.Array.Values {
			if s := valueToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := valueToString(val); s != "" {
		return []string{s}
	}
	return nil
}
