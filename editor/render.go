package editor

import (
	"image"

	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// screen is the band layout of the canvas.
type screen struct {
	bounds     image.Rectangle
	header     image.Rectangle
	text       image.Rectangle
	footer     image.Rectangle
	lineHeight int
	rows       int
	margin     int
}

func measureScreen(c Canvas, g Geometry) screen {
	w, h := c.Size()
	lh := maxInt(1, c.LineHeight())
	text := image.Rect(g.Margin, g.Header, w-g.Margin, h-g.Footer)
	if text.Empty() {
		text = image.Rect(0, 0, maxInt(w, 1), maxInt(h, lh))
	}
	return screen{
		bounds:     image.Rect(0, 0, w, h),
		header:     image.Rect(0, 0, w, g.Header),
		text:       text,
		footer:     image.Rect(0, h-g.Footer, w, h),
		lineHeight: lh,
		rows:       maxInt(1, text.Dy()/lh),
		margin:     g.Margin,
	}
}

// textWidth is the wrap width of the text band.
func (sc screen) textWidth() int {
	return maxInt(1, sc.text.Dx())
}

func (s *Session) paint() {
	rep, regions := s.refresh.Decide()
	defer s.refresh.Clear()
	if rep == RepaintNone {
		return
	}

	full := rep == RepaintFull
	if full {
		s.canvas.Clear(s.screen.bounds)
		s.drawHeader()
		s.drawText()
		s.drawFooter()
	} else {
		if regions&RegionStatus != 0 {
			s.canvas.Clear(s.screen.header)
			s.drawHeader()
		}
		if regions&RegionText != 0 {
			s.canvas.Clear(s.screen.text)
			s.drawText()
		}
	}

	if err := s.canvas.Commit(full); err != nil {
		s.log.Warn("display commit failed", "repaint", rep.String(), "err", err)
	}
}

func (s *Session) drawHeader() {
	sc := s.screen
	y := sc.header.Min.Y + maxInt(0, (sc.header.Dy()-sc.lineHeight)/2)

	title := s.cfg.Title
	x := (sc.header.Dx() - s.canvas.MeasureWidth(title, FaceTitle)) / 2
	s.canvas.DrawText(maxInt(sc.margin, x), y, title, FaceTitle)

	if slot := s.ind.Slot(); slot != "" {
		x := sc.header.Max.X - sc.margin - s.canvas.MeasureWidth(slot, FaceStatus)
		s.canvas.DrawText(maxInt(0, x), y, slot, FaceStatus)
	}
}

func (s *Session) drawFooter() {
	sc := s.screen
	if sc.footer.Dy() <= 0 {
		return
	}
	y := sc.footer.Min.Y + maxInt(0, (sc.footer.Dy()-sc.lineHeight)/2)
	s.canvas.DrawText(sc.margin, y, s.cfg.Footer, FaceStatus)
}

func (s *Session) drawText() {
	sc := s.screen
	cursor := LogicalToDisplay(s.layout, s.doc.Cursor())
	for i := 0; i < sc.rows; i++ {
		row := s.view.Offset + i
		if row >= s.layout.Len() {
			break
		}
		line := s.layout.Lines[row]
		y := sc.text.Min.Y + i*sc.lineHeight
		if line.Text != "" {
			s.canvas.DrawText(sc.text.Min.X, y, line.Text, FaceBody)
		}
		if row == cursor.Row {
			x := sc.text.Min.X + s.canvas.MeasureWidth(grapheme.Prefix(line.Text, cursor.Col), FaceBody)
			s.canvas.DrawCursor(x, y, sc.lineHeight)
		}
	}
}
