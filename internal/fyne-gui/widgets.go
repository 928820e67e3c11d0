package fynegui

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ToggleSwitch is the animated on/off switch used for Dark Mode.
type ToggleSwitch struct {
	widget.BaseWidget

	OnChanged func(bool)
	Checked   bool
	Text      string

	background *canvas.Rectangle
	handle     *canvas.Circle
	label      *widget.Label
	animation  *fyne.Animation
}

// NewToggleSwitch creates a new toggle switch
func NewToggleSwitch(text string, changed func(bool)) *ToggleSwitch {
	t := &ToggleSwitch{
		Text:      text,
		OnChanged: changed,
	}
	t.ExtendBaseWidget(t)
	return t
}

// CreateRenderer creates the renderer for the toggle switch
func (t *ToggleSwitch) CreateRenderer() fyne.WidgetRenderer {
	t.background = canvas.NewRectangle(color.RGBA{200, 200, 200, 255})
	t.background.CornerRadius = 12
	t.background.StrokeWidth = 0

	t.handle = canvas.NewCircle(color.White)
	t.handle.StrokeWidth = 0

	t.label = widget.NewLabel(t.Text)

	objects := []fyne.CanvasObject{
		t.background,
		t.handle,
	}

	return &toggleSwitchRenderer{
		toggle:  t,
		objects: objects,
	}
}

// Tapped handles tap events
func (t *ToggleSwitch) Tapped(_ *fyne.PointEvent) {
	t.SetChecked(!t.Checked)
}

// SetChecked sets the checked state with animation
func (t *ToggleSwitch) SetChecked(checked bool) {
	if t.Checked == checked {
		return
	}

	t.Checked = checked

	// If the handle isn't created yet, just set the state
	if t.handle == nil || t.background == nil {
		if t.OnChanged != nil {
			t.OnChanged(checked)
		}
		return
	}

	// Animate the toggle
	startX := t.handle.Position().X
	var endX float32
	if checked {
		endX = 26
		t.background.FillColor = color.RGBA{R: 59, G: 130, B: 246, A: 255} // Softer blue
	} else {
		endX = 2
		t.background.FillColor = color.RGBA{156, 163, 175, 255} // Gray
	}

	if t.animation != nil {
		t.animation.Stop()
	}

	t.animation = fyne.NewAnimation(200*time.Millisecond, func(progress float32) {
		newX := startX + (endX-startX)*progress
		t.handle.Move(fyne.NewPos(newX, 2))
		t.background.Refresh()
		t.handle.Refresh()
	})

	t.animation.Curve = fyne.AnimationEaseInOut
	t.animation.Start()

	if t.OnChanged != nil {
		t.OnChanged(checked)
	}
}

// toggleSwitchRenderer is the renderer for ToggleSwitch
type toggleSwitchRenderer struct {
	toggle  *ToggleSwitch
	objects []fyne.CanvasObject
}

func (r *toggleSwitchRenderer) Layout(size fyne.Size) {
	r.toggle.background.Resize(fyne.NewSize(36, 18))
	r.toggle.handle.Resize(fyne.NewSize(14, 14))

	if r.toggle.Checked {
		r.toggle.handle.Move(fyne.NewPos(20, 2))
	} else {
		r.toggle.handle.Move(fyne.NewPos(2, 2))
	}
}

func (r *toggleSwitchRenderer) MinSize() fyne.Size {
	return fyne.NewSize(36, 18)
}

func (r *toggleSwitchRenderer) Refresh() {
	if r.toggle.Checked {
		r.toggle.background.FillColor = color.RGBA{R: 59, G: 130, B: 246, A: 255} // Softer blue
		r.toggle.handle.Move(fyne.NewPos(20, 2))
	} else {
		r.toggle.background.FillColor = color.RGBA{156, 163, 175, 255} // Gray
		r.toggle.handle.Move(fyne.NewPos(2, 2))
	}
	r.toggle.background.Refresh()
}

func (r *toggleSwitchRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *toggleSwitchRenderer) Destroy() {}

const toastDuration = 3 * time.Second

// toastKind picks a toast's icon and color.
type toastKind string

const (
	toastInfo    toastKind = "info"
	toastSuccess toastKind = "success"
	toastWarning toastKind = "warning"
)

var toastStyles = map[toastKind]struct {
	icon fyne.Resource
	bg   color.Color
}{
	toastSuccess: {theme.ConfirmIcon(), color.RGBA{34, 197, 94, 240}},
	toastWarning: {theme.WarningIcon(), color.RGBA{255, 184, 108, 240}},
	toastInfo:    {theme.InfoIcon(), color.RGBA{98, 114, 164, 240}},
}

// showToast slides a notification in at the top of the window and removes it
// after a few seconds or when tapped. Unknown kinds show as info. Must be
// called on the UI goroutine.
func showToast(window fyne.Window, message string, kind toastKind) {
	style, ok := toastStyles[kind]
	if !ok {
		style = toastStyles[toastInfo]
	}

	bg := canvas.NewRectangle(style.bg)
	bg.CornerRadius = 8

	icon := widget.NewIcon(style.icon)
	label := widget.NewLabel(message)
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.Truncation = fyne.TextTruncateEllipsis

	dismiss := widget.NewButton("", nil)
	dismiss.Importance = widget.LowImportance

	toast := container.NewStack(
		bg,
		container.NewPadded(container.NewBorder(nil, nil, icon, nil, label)),
		dismiss,
	)
	overlay := container.NewWithoutLayout(toast)
	dismiss.OnTapped = func() {
		window.Canvas().Overlays().Remove(overlay)
	}

	size := fyne.NewSize(360, 60)
	x := (window.Canvas().Size().Width - size.Width) / 2
	shownY, hiddenY := float32(20), -size.Height

	toast.Resize(size)
	toast.Move(fyne.NewPos(x, hiddenY))
	window.Canvas().Overlays().Add(overlay)

	slide := func(from, to float32, curve fyne.AnimationCurve, done func()) {
		anim := fyne.NewAnimation(250*time.Millisecond, func(p float32) {
			toast.Move(fyne.NewPos(x, from+(to-from)*p))
			if p >= 1 && done != nil {
				done()
			}
		})
		anim.Curve = curve
		anim.Start()
	}
	slide(hiddenY, shownY, fyne.AnimationEaseOut, nil)

	go func() {
		time.Sleep(toastDuration)
		fyne.Do(func() {
			slide(shownY, hiddenY, fyne.AnimationEaseIn, func() {
				window.Canvas().Overlays().Remove(overlay)
			})
		})
	}()
}

// ProgressMeter is a progress bar labelled with a two-decimal percentage,
// matching the figure in the translation progress report.
type ProgressMeter struct {
	widget.BaseWidget

	Percent float64

	bar   *widget.ProgressBar
	label *widget.Label
}

// NewProgressMeter returns a meter at 0.00%.
func NewProgressMeter() *ProgressMeter {
	p := &ProgressMeter{
		bar:   widget.NewProgressBar(),
		label: widget.NewLabel("0.00%"),
	}
	p.bar.TextFormatter = func() string { return "" }
	p.label.Alignment = fyne.TextAlignCenter
	p.ExtendBaseWidget(p)
	return p
}

func (p *ProgressMeter) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(p.bar, container.NewCenter(p.label)))
}

// SetPercent sets the value, 0 to 100.
func (p *ProgressMeter) SetPercent(percent float64) {
	p.Percent = percent
	p.bar.SetValue(percent / 100)
	p.label.SetText(fmt.Sprintf("%.2f%%", percent))
}
