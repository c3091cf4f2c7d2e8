package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/tomz197/arpong/internal/audio"
	"github.com/tomz197/arpong/internal/config"
	"github.com/tomz197/arpong/internal/draw"
	"github.com/tomz197/arpong/internal/game"
	"github.com/tomz197/arpong/internal/input"
	"github.com/tomz197/arpong/internal/scene"
)

func main() {
	_ = godotenv.Load()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	if err := run(reader, os.Stdout); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(r *bufio.Reader, w io.Writer) error {
	ts := scene.NewTermScene(w, draw.DefaultTermSizeFunc)
	ts.SetFooter("arrows/wasd move paddle · q quits")

	var sink game.AudioSink
	if s, err := audio.NewSink(); err == nil {
		sink = s
	} else {
		log.Printf("audio unavailable, continuing silent: %v", err)
	}

	g := game.New(game.Options{
		Scene:         ts,
		Audio:         sink,
		PlayerDisplay: ts.PlayerSink(),
		AIDisplay:     ts.OpponentSink(),
		WinningScore:  config.GetEnvInt("ARPONG_WINNING_SCORE", 0),
	})

	// The input hook registers first so pointer motion lands before
	// the game's own update each frame.
	stream := input.StartStream(r)
	pointer := &input.Pointer{
		Y:     game.TableHeight + game.PaddleHeight/2,
		MinX:  -game.TableWidth / 2,
		MaxX:  game.TableWidth / 2,
		MinY:  game.TableHeight,
		MaxY:  game.TableHeight + game.PlayAreaHeight,
		Speed: 0.9,
	}
	ts.AddUpdateCallback(func(dt float64) {
		in := input.ReadInput(stream)
		if in.Quit {
			ts.Stop()
			return
		}
		pointer.Apply(in, dt)
		g.SetPlayerTarget(pointer.X, pointer.Y)
	})

	if err := g.Initialize(); err != nil {
		return err
	}
	defer g.Dispose()

	return ts.Run()
}
