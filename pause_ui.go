package main

import (
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/coderunner/common"
)

var (
	menuWhite = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	menuGray  = color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
)

// NewPauseUI builds the pause overlay: title, control hints, and buttons to
// resume or restart the run. Colored nine-slices and the built-in basic font
// keep it free of theme assets.
func NewPauseUI(g *Game) *ebitenui.UI {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 200})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(menuLabel("Paused", &face, menuWhite))
	for _, hint := range []string{
		"Move   A / D",
		"Jump   Space",
		"Dash   Shift",
	} {
		panel.AddChild(menuLabel(hint, &face, menuGray))
	}
	panel.AddChild(menuButton("Resume", &face, func() { g.paused = false }))
	panel.AddChild(menuButton("Restart", &face, g.restartRun))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func menuLabel(text string, face *ebtext.Face, clr color.NRGBA) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(text, face, clr),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func menuButton(label string, face *ebtext.Face, onClick func()) *widget.Button {
	img := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: img, Pressed: img}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: menuWhite}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) { onClick() }),
	)
}
