package common

import (
	"bytes"
	"image/color"
	"strconv"
	"sync"

	"github.com/Freeeeeet/condo_bot/internal/availability"
	"github.com/Freeeeeet/condo_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/condo_bot/internal/service"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth      = 980
	headerHeight    = 110
	weekdayHeight   = 50
	cellHeight      = 110
	legendHeight    = 70
	gridPadding     = 20
	cellGap         = 6
	cellRadius      = 10.0
	totalDaysInWeek = 7
)

// Константы шрифтов
const (
	titleFontSize   = 36.0
	weekdayFontSize = 20.0
	dayFontSize     = 30.0
	countFontSize   = 16.0
	legendFontSize  = 18.0
)

// Цветовая схема
var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	textColor       = color.RGBA{50, 55, 60, 255}
	mutedTextColor  = color.RGBA{150, 155, 160, 255}
	weekdayColor    = color.RGBA{110, 115, 120, 255}
	outsideDayColor = color.RGBA{235, 236, 238, 255}
	pastDayColor    = color.RGBA{225, 226, 228, 255}
	todayRingColor  = color.RGBA{255, 99, 71, 255}

	availableColor = color.RGBA{133, 193, 85, 220}
	pendingColor   = color.RGBA{255, 205, 86, 230}
	bookedColor    = color.RGBA{235, 110, 110, 230}
)

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// loadFont загружает шрифт указанного стиля или использует basicfont как fallback.
// Go-шрифты содержат кириллицу.
func loadFont(dc *gg.Context, size float64, style ...FontStyle) {
	fontStyle := FontStyleDefault
	if len(style) > 0 {
		fontStyle = style[0]
	}

	fontData := goregular.TTF
	if fontStyle == FontStyleBold {
		fontData = gobold.TTF
	}

	fontsMu.Lock()
	parsed, ok := cachedFonts[fontStyle]
	if !ok {
		var err error
		parsed, err = opentype.Parse(fontData)
		if err != nil {
			fontsMu.Unlock()
			dc.SetFontFace(basicfont.Face7x13)
			return
		}
		cachedFonts[fontStyle] = parsed
	}
	fontsMu.Unlock()

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// GenerateMonthImage рисует календарь месяца с занятостью дней в PNG
func GenerateMonthImage(view *service.MonthView) ([]byte, error) {
	weeks := len(view.Weeks)
	height := headerHeight + weekdayHeight + weeks*cellHeight + legendHeight

	dc := gg.NewContext(imageWidth, height)
	dc.SetColor(bgColor)
	dc.Clear()

	cellWidth := float64(imageWidth-2*gridPadding) / totalDaysInWeek

	drawTitle(dc, formatting.FormatMonth(view.Month))
	drawWeekdays(dc, view, cellWidth)
	for row, week := range view.Weeks {
		for col, day := range week {
			x := float64(gridPadding) + float64(col)*cellWidth
			y := float64(headerHeight+weekdayHeight) + float64(row*cellHeight)
			drawDay(dc, day, x, y, cellWidth)
		}
	}
	drawLegend(dc, float64(height-legendHeight))

	return encodePNG(dc)
}

// drawTitle рисует название месяца
func drawTitle(dc *gg.Context, title string) {
	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, imageWidth/2, headerHeight/2, 0.5, 0.5)
}

// drawWeekdays рисует строку с днями недели
func drawWeekdays(dc *gg.Context, view *service.MonthView, cellWidth float64) {
	loadFont(dc, weekdayFontSize, FontStyleBold)
	dc.SetColor(weekdayColor)
	for i, wd := range view.Weekdays {
		x := float64(gridPadding) + float64(i)*cellWidth + cellWidth/2
		dc.DrawStringAnchored(formatting.GetWeekdayShort(wd), x, headerHeight+weekdayHeight/2, 0.5, 0.5)
	}
}

// drawDay рисует одну ячейку календаря
func drawDay(dc *gg.Context, day availability.CalendarDay, x, y, cellWidth float64) {
	w := cellWidth - cellGap
	h := float64(cellHeight - cellGap)

	dc.SetColor(dayColor(day))
	dc.DrawRoundedRectangle(x, y, w, h, cellRadius)
	dc.Fill()

	if day.IsToday {
		dc.SetColor(todayRingColor)
		dc.SetLineWidth(4)
		dc.DrawRoundedRectangle(x+2, y+2, w-4, h-4, cellRadius)
		dc.Stroke()
	}

	if !day.InMonth {
		loadFont(dc, dayFontSize)
		dc.SetColor(mutedTextColor)
		dc.DrawStringAnchored(strconv.Itoa(day.Date.Day), x+w/2, y+h/2, 0.5, 0.5)
		return
	}

	loadFont(dc, dayFontSize, FontStyleBold)
	if day.IsPast {
		dc.SetColor(mutedTextColor)
	} else {
		dc.SetColor(textColor)
	}
	dc.DrawStringAnchored(strconv.Itoa(day.Date.Day), x+w/2, y+h/2-8, 0.5, 0.5)

	if day.Occupancy.Count > 0 {
		loadFont(dc, countFontSize)
		dc.DrawStringAnchored(
			strconv.Itoa(day.Occupancy.Count)+" "+formatting.PluralizeReservations(day.Occupancy.Count),
			x+w/2, y+h-18, 0.5, 0.5,
		)
	}
}

// dayColor цвет ячейки по статусу дня
func dayColor(day availability.CalendarDay) color.Color {
	switch {
	case !day.InMonth:
		return outsideDayColor
	case day.Occupancy.Status == availability.DayBooked:
		return bookedColor
	case day.Occupancy.Status == availability.DayPending:
		return pendingColor
	case day.IsPast:
		return pastDayColor
	default:
		return availableColor
	}
}

// drawLegend рисует легенду внизу
func drawLegend(dc *gg.Context, top float64) {
	items := []struct {
		Label string
		Clr   color.Color
	}{
		{"Свободно", availableColor},
		{"Ожидает одобрения", pendingColor},
		{"Забронировано", bookedColor},
	}

	boxW, boxH := 26.0, 18.0
	x := float64(gridPadding)
	y := top + legendHeight/2 - boxH/2

	loadFont(dc, legendFontSize)
	for _, item := range items {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 4)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(item.Label, x+boxW+10, y+boxH/2, 0, 0.5)
		w, _ := dc.MeasureString(item.Label)
		x += boxW + 10 + w + 40
	}
}

// encodePNG кодирует изображение в PNG
func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
