package domain

import (
	"math/rand"
	"sync"
)

// ColorPicker chooses the display colour of a new root task.
type ColorPicker interface {
	PickColor() string
}

var DefaultPalette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
	"#F8C471", "#82E0AA", "#F1948A", "#D7BDE2", "#A9CCE3",
	"#F9E79F", "#D5A6BD", "#A3E4D7", "#FAD7A0", "#AED6F1",
}

type PaletteColorPicker struct {
	mu      sync.Mutex
	rnd     *rand.Rand
	palette []string
}

func NewPaletteColorPicker(src rand.Source, palette []string) *PaletteColorPicker {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	return &PaletteColorPicker{rnd: rand.New(src), palette: palette}
}

func (p *PaletteColorPicker) PickColor() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.palette[p.rnd.Intn(len(p.palette))]
}

// FixedColorPicker always returns the same colour.
type FixedColorPicker string

func (c FixedColorPicker) PickColor() string {
	return string(c)
}
