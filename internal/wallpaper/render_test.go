package wallpaper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/codr1/yeardots/internal/fonts"
	"github.com/codr1/yeardots/internal/themes"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	renderer, err := NewRenderer(DefaultLayout(), fonts.Fallback())
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return renderer
}

func assertPixel(t *testing.T, img *image.RGBA, p image.Point, want color.RGBA, label string) {
	t.Helper()
	got := img.RGBAAt(p.X, p.Y)
	if got != want {
		t.Fatalf("%s: pixel at %v = %v, want %v", label, p, got, want)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		idx   int
		today int
		total int
		want  CellClass
	}{
		{name: "first_day_is_today", idx: 1, today: 1, total: 365, want: Today},
		{name: "future", idx: 2, today: 1, total: 365, want: Future},
		{name: "past", idx: 1, today: 2, total: 365, want: Past},
		{name: "last_day", idx: 365, today: 365, total: 365, want: Today},
		{name: "leap_day_366", idx: 366, today: 10, total: 366, want: Future},
		{name: "beyond_common_year", idx: 366, today: 10, total: 365, want: OutOfRange},
		{name: "beyond_with_today_beyond", idx: 370, today: 370, total: 365, want: OutOfRange},
		{name: "last_cell", idx: 374, today: 1, total: 366, want: OutOfRange},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.idx, test.today, test.total); got != test.want {
				t.Fatalf("Classify(%d, %d, %d) = %s, want %s", test.idx, test.today, test.total, got, test.want)
			}
		})
	}
}

func TestClassifyPartitionsGrid(t *testing.T) {
	cells := DefaultLayout().Cells()
	for _, total := range []int{365, 366} {
		for today := 1; today <= total; today++ {
			counts := map[CellClass]int{}
			for idx := 1; idx <= cells; idx++ {
				class := Classify(idx, today, total)
				if idx > total && class != OutOfRange {
					t.Fatalf("idx %d beyond %d classified %s", idx, total, class)
				}
				counts[class]++
			}
			if counts[Today] != 1 {
				t.Fatalf("today=%d total=%d: %d today cells", today, total, counts[Today])
			}
			if counts[Past] != today-1 || counts[Future] != total-today || counts[OutOfRange] != cells-total {
				t.Fatalf("today=%d total=%d: unexpected counts %v", today, total, counts)
			}
		}
	}
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		today int
		total int
		want  string
	}{
		{today: 1, total: 365, want: "364 • 0%"},
		{today: 365, total: 365, want: "0 • 100%"},
		{today: 183, total: 366, want: "183 • 50%"},
		{today: 2, total: 365, want: "363 • 1%"},
		{today: 292, total: 365, want: "73 • 80%"},
	}

	for _, test := range tests {
		if got := StatusText(test.today, test.total); got != test.want {
			t.Errorf("StatusText(%d, %d) = %q, want %q", test.today, test.total, got, test.want)
		}
	}
}

func TestLayoutCenter(t *testing.T) {
	l := DefaultLayout()
	tests := []struct {
		idx  int
		want image.Point
	}{
		{idx: 1, want: image.Pt(100, 800)},
		{idx: 17, want: image.Pt(1060, 800)},
		{idx: 18, want: image.Pt(100, 860)},
		{idx: 365, want: image.Pt(100+7*60, 800+21*60)},
		{idx: 374, want: image.Pt(1060, 2060)},
	}
	for _, test := range tests {
		if got := l.Center(test.idx); got != test.want {
			t.Errorf("Center(%d) = %v, want %v", test.idx, got, test.want)
		}
	}
}

func TestLayoutValidate(t *testing.T) {
	if err := DefaultLayout().Validate(); err != nil {
		t.Fatalf("DefaultLayout().Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Layout)
	}{
		{name: "zero_width", mutate: func(l *Layout) { l.Width = 0 }},
		{name: "small_grid", mutate: func(l *Layout) { l.Rows = 21 }},
		{name: "overlapping_dots", mutate: func(l *Layout) { l.Radius = 31 }},
		{name: "zero_font", mutate: func(l *Layout) { l.FontSize = 0 }},
		{name: "negative_stroke", mutate: func(l *Layout) { l.StrokeWidth = -1 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l := DefaultLayout()
			test.mutate(&l)
			if err := l.Validate(); err == nil {
				t.Fatalf("Validate() expected error")
			}
			if _, err := NewRenderer(l, nil); err == nil {
				t.Fatalf("NewRenderer() expected error")
			}
		})
	}
}

func TestRenderFirstDay(t *testing.T) {
	renderer := newTestRenderer(t)
	theme := themes.DefaultTheme()
	img := renderer.Render(RenderRequest{Today: 1, TotalDays: 365}, theme)

	if img.Bounds() != image.Rect(0, 0, 1179, 2556) {
		t.Fatalf("Render() bounds = %v", img.Bounds())
	}
	l := renderer.Layout()
	assertPixel(t, img, image.Pt(0, 0), theme.Background, "corner")
	assertPixel(t, img, l.Center(1), theme.Today, "idx 1")
	for idx := 2; idx <= 365; idx++ {
		assertPixel(t, img, l.Center(idx), theme.Future, "future cell")
	}
	for idx := 366; idx <= l.Cells(); idx++ {
		assertPixel(t, img, l.Center(idx), theme.Background, "out-of-range cell")
	}
}

func TestRenderLastDay(t *testing.T) {
	renderer := newTestRenderer(t)
	theme := themes.DefaultTheme()
	img := renderer.Render(RenderRequest{Today: 365, TotalDays: 365}, theme)

	l := renderer.Layout()
	for idx := 1; idx < 365; idx++ {
		assertPixel(t, img, l.Center(idx), theme.Past, "past cell")
	}
	assertPixel(t, img, l.Center(365), theme.Today, "idx 365")
}

func TestRenderDrawsStatusText(t *testing.T) {
	renderer := newTestRenderer(t)
	theme := themes.DefaultTheme()
	img := renderer.Render(RenderRequest{Today: 183, TotalDays: 366}, theme)

	l := renderer.Layout()
	band := image.Rect(0, l.TextBaseline-int(l.FontSize)*2, l.Width, l.TextBaseline+int(l.FontSize))
	minX, maxX := l.Width, -1
	for y := band.Min.Y; y < band.Max.Y; y++ {
		for x := band.Min.X; x < band.Max.X; x++ {
			if img.RGBAAt(x, y) == theme.TextFill {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	if maxX < 0 {
		t.Fatalf("no text fill pixels found near baseline %d", l.TextBaseline)
	}

	// Ink is centered to within a few pixels of antialiasing.
	left, right := minX, l.Width-1-maxX
	if diff := left - right; diff < -4 || diff > 4 {
		t.Fatalf("status text not centered: left margin %d, right margin %d", left, right)
	}
}

// extent returns the horizontal span of pixels in band matching keep,
// and how many there are.
func extent(img *image.RGBA, band image.Rectangle, keep func(color.RGBA) bool) (minX, maxX, count int) {
	minX, maxX = band.Max.X, -1
	for y := band.Min.Y; y < band.Max.Y; y++ {
		for x := band.Min.X; x < band.Max.X; x++ {
			if !keep(img.RGBAAt(x, y)) {
				continue
			}
			count++
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
		}
	}
	return minX, maxX, count
}

func TestRenderOutlinesStatusText(t *testing.T) {
	// Black background, green stroke, white fill: any pixel with more
	// green than red carries stroke color, and nothing else can produce one.
	theme := themes.DefaultTheme()
	theme.Background = color.RGBA{A: 255}
	theme.TextStroke = color.RGBA{G: 255, A: 255}
	theme.TextFill = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	req := RenderRequest{Today: 100, TotalDays: 365}

	isFill := func(c color.RGBA) bool { return c == theme.TextFill }
	hasStroke := func(c color.RGBA) bool { return c.G > c.R }

	tests := []struct {
		name        string
		strokeWidth int
	}{
		{name: "default_stroke", strokeWidth: DefaultLayout().StrokeWidth},
		{name: "wide_stroke", strokeWidth: 4},
		{name: "no_stroke", strokeWidth: 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			layout := DefaultLayout()
			layout.StrokeWidth = test.strokeWidth
			renderer, err := NewRenderer(layout, fonts.Fallback())
			if err != nil {
				t.Fatalf("NewRenderer() error = %v", err)
			}
			img := renderer.Render(req, theme)

			band := image.Rect(0, layout.TextBaseline-int(layout.FontSize)*2, layout.Width, layout.TextBaseline+int(layout.FontSize))
			fillMin, fillMax, fillCount := extent(img, band, isFill)
			if fillCount == 0 {
				t.Fatalf("no text fill pixels found")
			}
			strokeMin, strokeMax, strokeCount := extent(img, band, hasStroke)

			if test.strokeWidth == 0 {
				if strokeCount != 0 {
					t.Fatalf("found %d stroke pixels with stroke width 0", strokeCount)
				}
				return
			}
			if strokeCount == 0 {
				t.Fatalf("no stroke pixels found around the text")
			}
			// The outline surrounds the fill ink on both sides.
			if strokeMin >= fillMin || strokeMax <= fillMax {
				t.Fatalf("stroke span [%d,%d] does not enclose fill span [%d,%d]", strokeMin, strokeMax, fillMin, fillMax)
			}
			limit := test.strokeWidth + 4
			if fillMin-strokeMin > limit || strokeMax-fillMax > limit {
				t.Fatalf("stroke span [%d,%d] reaches more than %d px past fill span [%d,%d]",
					strokeMin, strokeMax, limit, fillMin, fillMax)
			}
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	renderer := newTestRenderer(t)
	theme := themes.DefaultTheme()
	req := RenderRequest{Today: 100, TotalDays: 366}

	first, err := renderer.RenderPNG(req, theme)
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	second, err := renderer.RenderPNG(req, theme)
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("RenderPNG() output differs between identical calls")
	}

	decoded, err := png.Decode(bytes.NewReader(first))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if decoded.Bounds().Dx() != 1179 || decoded.Bounds().Dy() != 2556 {
		t.Fatalf("decoded bounds = %v", decoded.Bounds())
	}
}

func TestRenderPNGRejectsInvalidRequest(t *testing.T) {
	renderer := newTestRenderer(t)
	for _, req := range []RenderRequest{
		{Today: 0, TotalDays: 365},
		{Today: 366, TotalDays: 365},
		{Today: 1, TotalDays: 0},
	} {
		if _, err := renderer.RenderPNG(req, themes.DefaultTheme()); err == nil {
			t.Fatalf("RenderPNG(%+v) expected error", req)
		}
	}
}

func TestRenderClipsDotsOutsideCanvas(t *testing.T) {
	l := DefaultLayout()
	l.Width, l.Height = 200, 200
	renderer, err := NewRenderer(l, nil)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	img := renderer.Render(RenderRequest{Today: 1, TotalDays: 365}, themes.DefaultTheme())
	if img.Bounds().Dx() != 200 {
		t.Fatalf("Render() bounds = %v", img.Bounds())
	}
}
