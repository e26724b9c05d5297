package ui

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gookit/color"
	"github.com/pterm/pterm"
)

type progressBar struct {
	Title               string
	titleStyle          *pterm.Style
	barStyle            *pterm.Style
	Current, Total      int64
	RoundingFactor      time.Duration
	Started, Lastupdate time.Time
	mutex               sync.Mutex
	barCharacter        string
	barFiller           string
	Done                bool
}

func ProgressBar(title string, max int) *progressBar {
	if max == 0 {
		max = 1 // avoid division by zero in pterm
	}

	pb := progressBar{
		Title:          title,
		Total:          int64(max),
		RoundingFactor: time.Second,
		barCharacter:   "█",
		barFiller:      " ",
		titleStyle:     pterm.NewStyle(),
		barStyle:       pterm.NewStyle(),
		Started:        time.Now(),
	}
	return &pb
}

func (pb *progressBar) Add(i int) {
	atomic.AddInt64(&pb.Current, int64(i))
	pb.update()
}

func (pb *progressBar) Set(i int) {
	atomic.StoreInt64(&pb.Current, int64(i))
	pb.update()
}

func (pb *progressBar) Finish() {
	pb.Done = true
	outputMutex.Lock()
	pterm.Fprinto(nil)
	clearneeded = false
	outputMutex.Unlock()
}

func (pb *progressBar) update() {
	pb.mutex.Lock()
	defer pb.mutex.Unlock()
	if time.Since(pb.Lastupdate) < time.Second {
		return
	}

	outputMutex.Lock()
	defer outputMutex.Unlock()

	clearneeded = true
	pb.Lastupdate = time.Now()

	width := pterm.GetTerminalWidth()

	current := atomic.LoadInt64(&pb.Current)
	var currentPercentage float32
	if pb.Total > 0 {
		currentPercentage = float32(current) * 100 / float32(pb.Total)
	}
	if currentPercentage > 100 {
		currentPercentage = 100
	}

	decoratorCount := pterm.Gray("[") + pterm.LightWhite(current) + pterm.Gray("/") + pterm.LightWhite(pb.Total) + pterm.Gray("]")
	decoratorCurrentPercentage := color.RGB(pterm.NewRGB(255, 0, 0).Fade(0, float32(pb.Total), float32(current), pterm.NewRGB(0, 255, 0)).GetValues()).
		Sprint(fmt.Sprintf("%.2f%%", currentPercentage))

	before := pb.titleStyle.Sprint(pb.Title) + " " + decoratorCount + " "
	after := " " + decoratorCurrentPercentage + " | " + time.Since(pb.Started).Round(pb.RoundingFactor).String()

	barMaxLength := width - len(pterm.RemoveColorFromString(before)) - len(pterm.RemoveColorFromString(after)) - 1
	barCurrentLength := int(math.Round(float64(currentPercentage * float32(barMaxLength) / 100)))

	var barFiller string
	if barMaxLength-barCurrentLength > 0 {
		barFiller = strings.Repeat(pb.barFiller, barMaxLength-barCurrentLength)
	}

	var bar string
	if pb.Total > 0 && barCurrentLength > 0 {
		bar = pb.barStyle.Sprint(strings.Repeat(pb.barCharacter, barCurrentLength)) + barFiller
	}

	pterm.Fprinto(nil, before+bar+after)
}
