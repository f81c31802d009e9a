package examgen

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"math"
	"os"

	"github.com/fogleman/gg"
)

// Canvas dimensions for generated diagrams. Layout coordinates below are in
// a 10x8 logical grid mapped onto this canvas.
const (
	diagramWidth  = 1000
	diagramHeight = 800
)

// koreanFontPaths are candidate TTF files able to render Hangul, probed in
// order. Without one the renderer falls back to the built-in bitmap face,
// which only covers ASCII.
var koreanFontPaths = []string{
	"/usr/share/fonts/truetype/nanum/NanumGothic.ttf",
	"/usr/share/fonts/TTF/NanumGothic.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"C:/Windows/Fonts/malgun.ttf",
	"/System/Library/Fonts/AppleSDGothicNeo.ttc",
}

// DiagramRenderer draws the fixed-layout diagram templates (ERD, table, UML,
// flowchart, UI mockup) and serializes them to base64 PNG.
type DiagramRenderer struct {
	fontPath string
}

// NewDiagramRenderer probes for a usable TTF font and returns a renderer.
func NewDiagramRenderer() *DiagramRenderer {
	r := &DiagramRenderer{}
	for _, path := range koreanFontPaths {
		if _, err := os.Stat(path); err == nil {
			r.fontPath = path
			break
		}
	}
	return r
}

func (r *DiagramRenderer) newCanvas(title string) *gg.Context {
	dc := gg.NewContext(diagramWidth, diagramHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	r.setFont(dc, 18)
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, diagramWidth/2, 30, 0.5, 0.5)
	return dc
}

func (r *DiagramRenderer) setFont(dc *gg.Context, points float64) {
	if r.fontPath == "" {
		return // built-in face
	}
	if err := dc.LoadFontFace(r.fontPath, points); err != nil {
		VerboseLog("font load failed (%s): %v", r.fontPath, err)
		r.fontPath = ""
	}
}

// gx/gy map the 10x8 logical grid onto the pixel canvas.
func gx(x float64) float64 { return x * diagramWidth / 10 }
func gy(y float64) float64 { return diagramHeight - y*diagramHeight/8 }

// Entity is one box in an ERD.
type Entity struct {
	Name       string
	Attributes []string
}

// ERDDiagram draws up to four entities at fixed positions with a 1:N
// relation arrow between the first two, mirroring a hand-drawn analysis ERD.
func (r *DiagramRenderer) ERDDiagram(entities []Entity) (string, error) {
	dc := r.newCanvas("Entity Relationship Diagram")

	positions := [][2]float64{{2, 6}, {8, 6}, {2, 2}, {8, 2}}
	for i, entity := range entities {
		if i >= len(positions) {
			break
		}
		x, y := positions[i][0], positions[i][1]

		dc.SetRGB(0.75, 0.85, 0.95)
		dc.DrawRoundedRectangle(gx(x-1), gy(y+0.75), gx(2), gy(8-1.5), 12)
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(2)
		dc.Stroke()

		r.setFont(dc, 16)
		dc.DrawStringAnchored(entity.Name, gx(x), gy(y+0.45), 0.5, 0.5)

		r.setFont(dc, 12)
		attrs := entity.Attributes
		if len(attrs) > 3 {
			attrs = attrs[:3]
		}
		for j, attr := range attrs {
			dc.DrawStringAnchored("· "+attr, gx(x), gy(y-float64(j)*0.25), 0.5, 0.5)
		}
	}

	if len(entities) >= 2 {
		dc.SetRGB(0.8, 0.1, 0.1)
		dc.SetLineWidth(2)
		r.drawArrow(dc, gx(3), gy(6.5), gx(7), gy(6.5), false)
		r.setFont(dc, 14)
		dc.DrawStringAnchored("1:N", gx(5), gy(6.8), 0.5, 0.5)
	}

	return encodePNG(dc)
}

// TableScenario is the canned data behind a normalization question.
type TableScenario struct {
	Title         string
	Columns       []string
	Rows          [][]string
	ViolationType string
}

// TableDiagram draws a data table with a shaded header row.
func (r *DiagramRenderer) TableDiagram(t TableScenario) (string, error) {
	dc := r.newCanvas(t.Title)

	cols := len(t.Columns)
	if cols == 0 {
		return "", fmt.Errorf("table scenario has no columns")
	}
	cellW := float64(diagramWidth-100) / float64(cols)
	cellH := 60.0
	left, top := 50.0, 80.0

	r.setFont(dc, 12)
	for i, col := range t.Columns {
		x := left + float64(i)*cellW
		dc.SetRGB(0.85, 0.85, 0.85)
		dc.DrawRectangle(x, top, cellW, cellH)
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(1.5)
		dc.Stroke()
		dc.DrawStringAnchored(col, x+cellW/2, top+cellH/2, 0.5, 0.5)
	}

	for ri, row := range t.Rows {
		y := top + float64(ri+1)*cellH
		for ci := 0; ci < cols; ci++ {
			cell := ""
			if ci < len(row) {
				cell = row[ci]
			}
			x := left + float64(ci)*cellW
			dc.SetRGB(1, 1, 1)
			dc.DrawRectangle(x, y, cellW, cellH)
			dc.FillPreserve()
			dc.SetRGB(0, 0, 0)
			dc.Stroke()
			dc.DrawStringAnchored(cell, x+cellW/2, y+cellH/2, 0.5, 0.5)
		}
	}

	return encodePNG(dc)
}

// UMLClass is one box in a class diagram.
type UMLClass struct {
	Name       string
	Attributes []string
	Methods    []string
}

// UMLDiagram draws class boxes with name/attribute/method compartments and
// an association arrow between the first two classes.
func (r *DiagramRenderer) UMLDiagram(classes []UMLClass) (string, error) {
	dc := r.newCanvas("UML Class Diagram")

	positions := [][2]float64{{2, 6}, {8, 6}, {2, 2}, {8, 2}}
	for i, cls := range classes {
		if i >= len(positions) {
			break
		}
		x, y := positions[i][0], positions[i][1]
		boxX, boxY := gx(x-1.5), gy(y+1.25)
		boxW, boxH := gx(3), 250.0

		dc.SetRGB(1, 1, 0.8)
		dc.DrawRoundedRectangle(boxX, boxY, boxW, boxH, 10)
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(2)
		dc.Stroke()

		r.setFont(dc, 15)
		dc.DrawStringAnchored(cls.Name, gx(x), boxY+28, 0.5, 0.5)
		dc.SetLineWidth(1)
		dc.DrawLine(boxX, boxY+50, boxX+boxW, boxY+50)
		dc.Stroke()

		r.setFont(dc, 12)
		yOff := boxY + 75.0
		for _, attr := range limitStrings(cls.Attributes, 2) {
			dc.DrawStringAnchored("- "+attr, gx(x), yOff, 0.5, 0.5)
			yOff += 25
		}
		dc.DrawLine(boxX, yOff-10, boxX+boxW, yOff-10)
		dc.Stroke()
		for _, method := range limitStrings(cls.Methods, 2) {
			dc.DrawStringAnchored("+ "+method, gx(x), yOff+15, 0.5, 0.5)
			yOff += 25
		}
	}

	if len(classes) >= 2 {
		dc.SetRGB(0.1, 0.1, 0.8)
		dc.SetLineWidth(2)
		r.drawArrow(dc, gx(3.6), gy(6), gx(6.4), gy(6), true)
	}

	return encodePNG(dc)
}

// FlowStep is one node in a flowchart. Type is "start", "end", "process" or
// "decision".
type FlowStep struct {
	Type string
	Text string
}

// Flowchart draws the steps top to bottom with connecting arrows: circles for
// start/end, diamonds for decisions, rounded rectangles for processing.
func (r *DiagramRenderer) Flowchart(steps []FlowStep) (string, error) {
	dc := r.newCanvas("Process Flowchart")
	if len(steps) == 0 {
		return "", fmt.Errorf("flowchart has no steps")
	}

	top, bottom := 100.0, float64(diagramHeight)-60
	gap := 0.0
	if len(steps) > 1 {
		gap = (bottom - top) / float64(len(steps)-1)
	}
	cx := float64(diagramWidth) / 2

	r.setFont(dc, 13)
	for i, step := range steps {
		y := top + float64(i)*gap

		switch step.Type {
		case "start", "end":
			dc.SetRGB(0.75, 0.95, 0.75)
			dc.DrawCircle(cx, y, 45)
			dc.FillPreserve()
		case "decision":
			dc.SetRGB(0.95, 0.7, 0.7)
			dc.MoveTo(cx, y-55)
			dc.LineTo(cx+110, y)
			dc.LineTo(cx, y+55)
			dc.LineTo(cx-110, y)
			dc.ClosePath()
			dc.FillPreserve()
		default:
			dc.SetRGB(0.75, 0.85, 0.95)
			dc.DrawRoundedRectangle(cx-110, y-32, 220, 64, 8)
			dc.FillPreserve()
		}
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(2)
		dc.Stroke()
		dc.DrawStringAnchored(step.Text, cx, y, 0.5, 0.5)

		if i < len(steps)-1 {
			r.drawArrow(dc, cx, y+60, cx, top+float64(i+1)*gap-60, true)
		}
	}

	return encodePNG(dc)
}

// UIComponent is one widget on a screen mockup, positioned on the logical
// grid. Type is "button", "input", "label" or "table".
type UIComponent struct {
	Type   string
	X, Y   float64
	Width  float64
	Height float64
	Text   string
}

// UIMockup draws a device frame and places the widgets inside it.
func (r *DiagramRenderer) UIMockup(components []UIComponent) (string, error) {
	dc := r.newCanvas("UI Mockup")

	// device frame
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(gx(1), gy(7), gx(8), gy(8-6))
	dc.FillPreserve()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(3)
	dc.Stroke()

	r.setFont(dc, 13)
	for _, comp := range components {
		x, y := gx(comp.X), gy(comp.Y+comp.Height)
		w, h := gx(comp.Width), gy(8-comp.Height)

		switch comp.Type {
		case "button":
			dc.SetRGB(0.75, 0.85, 0.95)
			dc.DrawRoundedRectangle(x, y, w, h, 6)
			dc.FillPreserve()
			dc.SetRGB(0.1, 0.1, 0.5)
			dc.SetLineWidth(1.5)
			dc.Stroke()
		case "input":
			dc.SetRGB(1, 1, 1)
			dc.DrawRectangle(x, y, w, h)
			dc.FillPreserve()
			dc.SetRGB(0.5, 0.5, 0.5)
			dc.SetLineWidth(1.5)
			dc.Stroke()
		case "table":
			dc.SetRGB(0.85, 0.85, 0.85)
			dc.DrawRectangle(x, y, w, h)
			dc.FillPreserve()
			dc.SetRGB(0, 0, 0)
			dc.SetLineWidth(1.5)
			dc.Stroke()
		}

		if comp.Text != "" {
			dc.SetRGB(0, 0, 0)
			dc.DrawStringAnchored(comp.Text, x+w/2, y+h/2, 0.5, 0.5)
		}
	}

	return encodePNG(dc)
}

// drawArrow draws a line from (x1,y1) to (x2,y2), with an arrow head at the
// end when head is true.
func (r *DiagramRenderer) drawArrow(dc *gg.Context, x1, y1, x2, y2 float64, head bool) {
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()
	if !head {
		return
	}
	angle := math.Atan2(y2-y1, x2-x1)
	const size = 12.0
	dc.MoveTo(x2, y2)
	dc.LineTo(x2-size*math.Cos(angle-math.Pi/6), y2-size*math.Sin(angle-math.Pi/6))
	dc.LineTo(x2-size*math.Cos(angle+math.Pi/6), y2-size*math.Sin(angle+math.Pi/6))
	dc.ClosePath()
	dc.Fill()
}

func limitStrings(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func encodePNG(dc *gg.Context) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return "", fmt.Errorf("failed to encode diagram: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
