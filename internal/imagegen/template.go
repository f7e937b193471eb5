package imagegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	cardSize  = 1080
	cardColor = "#FF6B9D"
)

// templateCard draws the fallback word card: brand background, the word
// in upper case, the meaning line, and an ellipse accent.
func (g *Generator) templateCard(word, meaning string) (string, error) {
	if err := os.MkdirAll(g.cfg.OutputDir, 0755); err != nil {
		return "", err
	}

	dc := gg.NewContext(cardSize, cardSize)
	dc.SetHexColor(cardColor)
	dc.Clear()
	dc.SetRGB(1, 1, 1)

	if err := g.setFont(dc, 80); err != nil {
		return "", err
	}
	dc.DrawStringAnchored("每日单词", cardSize/2, 240, 0.5, 0.5)

	if err := g.setFont(dc, 60); err != nil {
		return "", err
	}
	dc.DrawStringAnchored(strings.ToUpper(word), cardSize/2, 430, 0.5, 0.5)

	if meaning != "" {
		if err := g.setFont(dc, 50); err != nil {
			return "", err
		}
		dc.DrawStringAnchored(meaning, cardSize/2, 580, 0.5, 0.5)
	}

	dc.SetLineWidth(5)
	dc.DrawEllipse(cardSize/2, 850, 150, 150)
	dc.Stroke()

	path := filepath.Join(g.cfg.OutputDir, safeFilename(word)+"_template.png")
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("failed to save template card: %w", err)
	}
	return path, nil
}

// setFont loads the configured TTF at the given size, falling back to
// the built-in bitmap face when no font is configured or loading fails.
// The fallback cannot render CJK glyphs but keeps the cycle running.
func (g *Generator) setFont(dc *gg.Context, points float64) error {
	if g.cfg.FontPath != "" {
		err := dc.LoadFontFace(g.cfg.FontPath, points)
		if err == nil {
			return nil
		}
		g.log.Warn().Err(err).Str("font", g.cfg.FontPath).Msg("failed to load font, using default face")
	}
	dc.SetFontFace(basicfont.Face7x13)
	return nil
}
