package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spacehole-rogue/holejump/internal/camera"
	"github.com/spacehole-rogue/holejump/internal/config"
	"github.com/spacehole-rogue/holejump/internal/galaxy"
	"github.com/spacehole-rogue/holejump/internal/game"
	"github.com/spacehole-rogue/holejump/internal/jump"
	"github.com/spacehole-rogue/holejump/internal/notify"
	"github.com/spacehole-rogue/holejump/internal/picker"
	"github.com/spacehole-rogue/holejump/internal/render"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	title        = "HoleJump"

	cellWidth  = 16
	cellHeight = 16
	gridCols   = screenWidth / cellWidth   // 80
	gridRows   = screenHeight / cellHeight // 45
)

const (
	// Star map viewport, in cells.
	mapTop  = 2
	mapCols = 56
	mapRows = 30

	panelX   = 58 // right-side status panel
	commsRow = 33 // message log
	commsMax = 10 // max visible messages

	techStep = 1.0
	panStep  = 24.0 // pixels per frame
)

// Game is the Ebitengine game struct. It owns rendering and input.
// All gameplay state lives in session.
type Game struct {
	renderer *render.GridRenderer
	buffer   *render.CellBuffer
	cam      camera.Camera
	session  *game.Session
	logger   *slog.Logger
}

func NewGame(cfg *config.Config, logger *slog.Logger, comms *game.MessageLog, sink notify.Sink) (*Game, error) {
	g, current, ship, err := loadGalaxy(cfg)
	if err != nil {
		return nil, err
	}

	session, err := game.NewSession(g, current, ship, game.Options{
		Jump:   cfg.Jump,
		Logger: logger,
		Log:    comms,
		Sink:   sink,
		Cursor: setCursor,
		Seed:   cfg.Seed,
	})
	if err != nil {
		return nil, err
	}

	atlas := render.NewFontAtlas()
	gm := &Game{
		renderer: render.NewGridRenderer(atlas, cellWidth, cellHeight),
		buffer:   render.NewCellBuffer(gridCols, gridRows),
		cam: camera.Fit(0, mapTop*cellHeight, mapCols*cellWidth, mapRows*cellHeight,
			cfg.Jump.GalaxyWidth),
		session: session,
		logger:  logger,
	}
	session.Log.Add(fmt.Sprintf("%s adrift in galaxy %d, near %s.",
		shipName(session.Ship), g.Seed, session.CurrentName()), game.MsgInfo)
	gm.drawScreen()
	return gm, nil
}

// loadGalaxy reads the configured snapshot, or generates one from the seed.
func loadGalaxy(cfg *config.Config) (*galaxy.Galaxy, string, *galaxy.ShipCapability, error) {
	if cfg.Snapshot == "" {
		ship := &galaxy.ShipCapability{Name: cfg.ShipName, TechLevel: cfg.TechLevel}
		return galaxy.Generate(cfg.Seed), "", ship, nil
	}
	data, err := os.ReadFile(cfg.Snapshot)
	if err != nil {
		return nil, "", nil, fmt.Errorf("read snapshot: %w", err)
	}
	loaded, err := galaxy.LoadSnapshot(data)
	if err != nil {
		return nil, "", nil, err
	}
	return loaded.Galaxy, loaded.Current, loaded.Ship, nil
}

func setCursor(c picker.Cursor) {
	if c == picker.CursorPointer {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
		return
	}
	ebiten.SetCursorShape(ebiten.CursorShapeDefault)
}

func shipName(s *galaxy.ShipCapability) string {
	if s == nil || s.Name == "" {
		return "Your ship"
	}
	return s.Name
}

func (g *Game) drawScreen() {
	buf := g.buffer
	s := g.session
	buf.Clear()

	// Title bar
	buf.WriteString(2, 0, title, render.ColorWhite, render.ColorBlack)
	buf.WriteString(12, 0, fmt.Sprintf("[ galaxy %d ]", s.Galaxy.Seed), render.ColorLightCyan, render.ColorBlack)

	// Ship
	buf.WriteString(panelX, 3, "--- Ship ---", render.ColorHeading, render.ColorBlack)
	buf.WriteString(panelX, 4, " "+shipName(s.Ship), render.ColorWhite, render.ColorBlack)
	tech := 0.0
	if s.Ship != nil {
		tech = s.Ship.TechLevel
	}
	techClr := uint8(render.ColorLightGreen)
	if tech < s.Jump.MinTechLevel {
		techClr = render.ColorLightRed
	}
	buf.WriteString(panelX, 5, " Tech", render.ColorLightGray, render.ColorBlack)
	buf.Bar(panelX+6, 5, 10, tech, 2*s.Jump.MinTechLevel, techClr)
	buf.WriteString(panelX+17, 5, fmt.Sprintf("%g", tech), techClr, render.ColorBlack)
	if r := s.MaxJumpDistance(); r > 0 {
		buf.WriteString(panelX, 6, fmt.Sprintf(" Range %.0f", r), render.ColorLightGray, render.ColorBlack)
	} else {
		buf.WriteString(panelX, 6, fmt.Sprintf(" Boost needs tech %g", s.Jump.MinTechLevel), render.ColorDarkGray, render.ColorBlack)
	}

	// Location
	buf.WriteString(panelX, 8, "--- Location ---", render.ColorHeading, render.ColorBlack)
	buf.WriteString(panelX, 9, " "+s.CurrentName(), render.ColorWhite, render.ColorBlack)
	buf.WriteString(panelX, 10, fmt.Sprintf(" %d systems, %d holes", len(s.Galaxy.Systems), len(s.Galaxy.BlackHoles)),
		render.ColorLightGray, render.ColorBlack)
	if seed, ok := s.LastKnownSeed(); ok {
		buf.WriteString(panelX, 11, fmt.Sprintf(" Last galaxy %d", seed), render.ColorDarkGray, render.ColorBlack)
	}

	// Jump affordance only exists while a black hole is in range.
	if s.JumpAvailable() {
		buf.WriteString(panelX, 13, "--- Jump ---", render.ColorHeading, render.ColorBlack)
		buf.WriteString(panelX, 14, " J: Jump boost", render.ColorTarget, render.ColorBlack)
		buf.WriteString(panelX, 15, fmt.Sprintf(" %d hole(s) in range", len(s.Targets())), render.ColorLightGray, render.ColorBlack)
		if s.Reach().CenterInRange {
			buf.WriteString(panelX, 16, " Galactic core in range", render.ColorCenter, render.ColorBlack)
		}
	}

	// Legend
	buf.WriteString(panelX, 19, "--- Legend ---", render.ColorHeading, render.ColorBlack)
	buf.Set(panelX+1, 20, render.GlyphStar, render.ColorYellow, render.ColorBlack)
	buf.WriteString(panelX+3, 20, "Star system", render.ColorLightGray, render.ColorBlack)
	buf.Set(panelX+1, 21, render.GlyphHole, render.ColorHole, render.ColorBlack)
	buf.WriteString(panelX+3, 21, "Black hole", render.ColorLightGray, render.ColorBlack)
	buf.Set(panelX+1, 22, render.GlyphHole, render.ColorTarget, render.ColorBlack)
	buf.WriteString(panelX+3, 22, "In jump range", render.ColorLightGray, render.ColorBlack)
	buf.Set(panelX+1, 23, render.GlyphHole, render.ColorCenter, render.ColorBlack)
	buf.WriteString(panelX+3, 23, "Galactic core", render.ColorLightGray, render.ColorBlack)
	buf.Set(panelX+1, 24, '@', render.ColorCurrent, render.ColorBlack)
	buf.WriteString(panelX+3, 24, "You", render.ColorLightGray, render.ColorBlack)

	// Message log
	buf.WriteString(2, commsRow, "--- Comms ---", render.ColorHeading, render.ColorBlack)
	for i, msg := range s.Log.Recent(commsMax) {
		buf.WriteString(2, commsRow+1+i, msg.Text, msgColor(msg.Priority), render.ColorBlack)
	}

	if s.Dialog.IsOpen() {
		g.drawDialog()
	}

	buf.WriteString(2, gridRows-1, "J:Jump  +/-:Tech  Arrows/Wheel:View  C:Center  ESC:Quit",
		render.ColorDarkGray, render.ColorBlack)
}

// drawDialog shows the travel modes the open dialog offers.
func (g *Game) drawDialog() {
	buf := g.buffer
	s := g.session
	const w, h = 36, 9
	x := (mapCols - w) / 2
	y := mapTop + (mapRows-h)/2

	buf.Box(x, y, w, h, render.ColorLightCyan, render.ColorBlue)
	buf.WriteString(x+2, y+1, "JUMP BOOST", render.ColorWhite, render.ColorBlue)
	buf.WriteString(x+2, y+2, "Destination is random.", render.ColorLightGray, render.ColorBlue)
	for i, mode := range s.Dialog.Modes() {
		buf.WriteString(x+2, y+4+i, modeLabel(i+1, mode, s), render.ColorYellow, render.ColorBlue)
	}
	buf.WriteString(x+2, y+h-2, "ESC  Cancel", render.ColorLightGray, render.ColorBlue)
}

func modeLabel(key int, m jump.Mode, s *game.Session) string {
	switch m {
	case jump.ModeNewGalaxy:
		return fmt.Sprintf("%d    New galaxy", key)
	case jump.ModeKnownGalaxy:
		if seed, ok := s.LastKnownSeed(); ok {
			return fmt.Sprintf("%d    Known galaxy %d", key, seed)
		}
		return fmt.Sprintf("%d    Known galaxy (none yet)", key)
	default:
		return fmt.Sprintf("%d    Local black hole", key)
	}
}

func msgColor(p game.MsgPriority) uint8 {
	switch p {
	case game.MsgCritical:
		return render.ColorLightRed
	case game.MsgWarning:
		return render.ColorYellow
	case game.MsgJump:
		return render.ColorLightMagenta
	case game.MsgDebug:
		return render.ColorDarkGray
	default:
		return render.ColorCyan
	}
}

func (g *Game) Update() error {
	s := g.session

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if !s.Dialog.IsOpen() {
			return ebiten.Termination
		}
		s.CancelJump()
	}

	if s.Dialog.IsOpen() {
		g.updateDialog()
	} else if inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		if err := s.OpenJump(); err != nil {
			s.Log.Add("No black hole in jump range.", game.MsgWarning)
		}
	}

	// Tech level
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.adjustTech(techStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.adjustTech(-techStep)
	}

	// View
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.cam.Pan(panStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.cam.Pan(-panStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.cam.Pan(0, panStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.cam.Pan(0, -panStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if here, ok := s.Galaxy.Locate(s.CurrentID); ok {
			g.cam.LookAt(here)
		}
	}

	mx, my := ebiten.CursorPosition()
	fx, fy := float64(mx), float64(my)
	if _, wy := ebiten.Wheel(); wy != 0 && g.cam.Contains(fx, fy) {
		factor := 1.25
		if wy < 0 {
			factor = 1 / factor
		}
		g.cam.Zoom(factor, fx, fy)
	}

	// Picking is suspended while the dialog covers the map.
	if !s.Dialog.IsOpen() {
		s.Hover(fx, fy, g.cam)
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && g.cam.Contains(fx, fy) {
			s.Click(fx, fy, g.cam)
		}
	}

	s.Tick()
	g.drawScreen()
	g.drawHoverInfo()

	fps := fmt.Sprintf("FPS: %.0f  TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS())
	g.buffer.WriteString(gridCols-20, gridRows-1, fps, render.ColorDarkGray, render.ColorBlack)
	return nil
}

func (g *Game) updateDialog() {
	s := g.session
	keys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}
	for i, mode := range s.Dialog.Modes() {
		if i >= len(keys) || !inpututil.IsKeyJustPressed(keys[i]) {
			continue
		}
		var seed *int64
		if mode == jump.ModeKnownGalaxy {
			if known, ok := s.LastKnownSeed(); ok {
				seed = jump.Seed(known)
			}
		}
		if err := s.ConfirmJump(mode, seed); err != nil {
			switch {
			case errors.Is(err, jump.ErrSeedRequired):
				s.Log.Add("No known galaxy to return to.", game.MsgWarning)
			default:
				s.Log.Add("Jump refused: "+err.Error(), game.MsgWarning)
			}
		}
		return
	}
}

func (g *Game) adjustTech(delta float64) {
	s := g.session
	level := delta
	if s.Ship != nil {
		level += s.Ship.TechLevel
	}
	if level < 0 {
		return
	}
	if err := s.SetTechLevel(level); err != nil {
		g.logger.Warn("set tech level", "level", level, "err", err)
	}
}

// drawHoverInfo describes the black hole under the pointer.
func (g *Game) drawHoverInfo() {
	const infoY = 1
	s := g.session
	id := s.Picker.Hovered()
	bh := s.Galaxy.BlackHole(id)
	if bh == nil {
		if ev, ok := s.Picker.Selected(); ok {
			bh = s.Galaxy.BlackHole(ev.ID)
		}
	}
	if bh == nil {
		g.buffer.WriteString(2, infoY, "Click a black hole to inspect", render.ColorDarkGray, render.ColorBlack)
		return
	}

	here, _ := s.Galaxy.Locate(s.CurrentID)
	desc := fmt.Sprintf("%s  %.0f units", bh.Name, here.Distance(bh.Pos))
	clr := uint8(render.ColorYellow)
	for _, t := range s.Targets() {
		if t == bh.ID {
			desc += "  in range"
			clr = render.ColorTarget
		}
	}
	if jump.IsCenter(s.Jump, *bh) {
		desc += "  galactic core"
	}
	g.buffer.WriteString(2, infoY, desc, clr, render.ColorBlack)
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.session
	g.renderer.DrawStarMap(screen, g.cam, render.Scene{
		Galaxy:    s.Galaxy,
		Jump:      s.Jump,
		CurrentID: s.CurrentID,
		Targets:   s.Targets(),
		MaxJump:   s.MaxJumpDistance(),
		Hovered:   s.Picker.Hovered(),
		Rings:     s.Picker.Rings,
	})
	g.renderer.Draw(screen, g.buffer)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// startEvents serves travel and selection envelopes over a websocket.
func startEvents(addr string, logger *slog.Logger) (*notify.WebSocketSink, *http.Server) {
	sink := notify.NewWebSocketSink(logger)
	mux := http.NewServeMux()
	mux.Handle("/events", sink)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("event server stopped", "addr", addr, "err", err)
		}
	}()
	logger.Info("event server listening", "addr", addr)
	return sink, srv
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	comms := game.NewMessageLog(50)
	logger := slog.New(game.NewCommsHandler(comms, cfg.LogLevel))

	var sink notify.Sink
	if cfg.EventAddr != "" {
		ws, srv := startEvents(cfg.EventAddr, logger)
		sink = ws
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
			_ = ws.Close()
		}()
	}

	gm, err := NewGame(cfg, logger, comms, sink)
	if err != nil {
		log.Fatalf("start: %v", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gm); err != nil {
		log.Fatal(err)
	}
}
