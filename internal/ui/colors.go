package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/glyn/stream-inspector/internal/models"
)

var styles = NewPalette("#FF0000", "#04B575", "#FF4672", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// reasonStyle colours a prune reason: kept items green, blocked red, the other removals amber.
func (p *Palette) reasonStyle(r models.Reason) lipgloss.Style {
	switch r {
	case models.ReasonKeep:
		return p.ok
	case models.ReasonBlocked:
		return p.err
	default:
		return p.warn
	}
}
