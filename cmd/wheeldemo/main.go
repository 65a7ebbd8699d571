package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/xtding233/spinwheel/internal/wheel"
)

// wheeldemo is a small tcell host for the wheel core: it supplies the
// two signals the core needs (clicks inside the wheel, frame ticks)
// and renders the rotating sections. Run with entries as args, e.g.
//
//	wheeldemo pizza:3 sushi:1 tacos:5
//
// Click the wheel to spin; q or Esc closes the session and quits.

const tickInterval = 33 * time.Millisecond

var palette = []tcell.Color{
	tcell.ColorRed,
	tcell.ColorGreen,
	tcell.ColorYellow,
	tcell.ColorBlue,
	tcell.ColorFuchsia,
	tcell.ColorAqua,
	tcell.ColorOlive,
	tcell.ColorTeal,
}

type demo struct {
	screen  tcell.Screen
	session *wheel.Session
	status  string
}

func parseEntries(args []string) []wheel.Entry {
	if len(args) == 0 {
		return []wheel.Entry{
			{ID: "pizza", Label: "Pizza", Weight: 3},
			{ID: "sushi", Label: "Sushi", Weight: 1},
			{ID: "tacos", Label: "Tacos", Weight: 5},
			{ID: "salad", Label: "Salad", Weight: 2},
		}
	}
	var entries []wheel.Entry
	for _, a := range args {
		label, wstr, found := strings.Cut(a, ":")
		w := 1
		if found {
			if v, err := strconv.Atoi(wstr); err == nil {
				w = v
			}
		}
		entries = append(entries, wheel.Entry{ID: label, Label: label, Weight: w})
	}
	return entries
}

// geometry returns the wheel center and radius for the current screen
// size. X distances are halved so the wheel looks round in a terminal
// cell grid (cells are roughly twice as tall as wide).
func (d *demo) geometry() (cx, cy int, radius float64) {
	w, h := d.screen.Size()
	cx, cy = w/2, h/2
	radius = float64(h)/2 - 3
	if rw := float64(w) / 4; rw < radius {
		radius = rw
	}
	if radius < 3 {
		radius = 3
	}
	return cx, cy, radius
}

func (d *demo) inWheel(x, y int) bool {
	cx, cy, radius := d.geometry()
	dx := float64(x-cx) / 2
	dy := float64(y - cy)
	return math.Sqrt(dx*dx+dy*dy) <= radius
}

func normalize(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func (d *demo) draw() {
	d.screen.Clear()
	cx, cy, radius := d.geometry()
	sections := d.session.Sections()
	rotation := d.session.Rotation()

	w, h := d.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float64(x-cx) / 2
			dy := float64(y - cy)
			if math.Sqrt(dx*dx+dy*dy) > radius {
				continue
			}
			// pointer sits at screen top (-π/2); the cell under it
			// must show the section the resolver picks at settle
			screenAngle := math.Atan2(dy, dx)
			layoutAngle := normalize(rotation + screenAngle + math.Pi/2)
			idx := len(sections) - 1 // residue falls to the last, like the resolver
			for i, s := range sections {
				if layoutAngle >= s.Start && layoutAngle < s.End {
					idx = i
					break
				}
			}
			e := sections[idx].Entry
			r := ' '
			if e.Label != "" {
				r = rune(e.Label[0])
			}
			style := tcell.StyleDefault.
				Background(palette[idx%len(palette)]).
				Foreground(tcell.ColorBlack)
			d.screen.SetContent(x, y, r, nil, style)
		}
	}

	// pointer marker above the wheel
	d.screen.SetContent(cx, cy-int(radius)-1, 'v', nil, tcell.StyleDefault.Bold(true))

	d.drawText(0, 0, fmt.Sprintf("%s  [%s]", d.session.Title(), d.session.Phase()))
	d.drawText(0, 1, d.status)
	d.drawText(0, h-1, "click the wheel to spin, q to quit")
	d.screen.Show()
}

func (d *demo) drawText(x, y int, s string) {
	for i, r := range s {
		d.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}

func run(entries []wheel.Entry, title string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	d := &demo{screen: screen}
	session, err := wheel.NewSession(entries, title, wheel.Options{}, func(e wheel.Entry) {
		d.status = fmt.Sprintf("result: %s", e.Label)
	})
	if err != nil {
		return err
	}
	d.session = session
	d.status = "waiting for a spin"

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.session.HandleTick(1)
			d.draw()
		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				if tev.Key() == tcell.KeyEscape || tev.Rune() == 'q' {
					d.session.Close()
					return nil
				}
			case *tcell.EventMouse:
				if tev.Buttons()&tcell.Button1 != 0 {
					x, y := tev.Position()
					if d.inWheel(x, y) {
						d.session.RequestSpin()
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}

func main() {
	title := flag.String("title", "Spin the wheel", "wheel title")
	flag.Parse()

	if err := run(parseEntries(flag.Args()), *title); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
