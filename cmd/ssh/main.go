package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"

	"github.com/tomz197/arpong/internal/config"
	"github.com/tomz197/arpong/internal/draw"
	"github.com/tomz197/arpong/internal/game"
	"github.com/tomz197/arpong/internal/input"
	"github.com/tomz197/arpong/internal/scene"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	_ = godotenv.Load()

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	winningScore := config.GetEnvInt("ARPONG_WINNING_SCORE", 0)
	log.Printf("SSH config: host=%s port=%s hostKeyPath=%s", host, port, hostKeyPath)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(winningScore),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Starting SSH server on %s:%s", host, port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

// gameMiddleware runs one independent game per SSH session. There is
// no shared world: each connection gets its own table, ball and AI
// opponent. Audio stays off here; the speaker is on the server.
func gameMiddleware(winningScore int) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			log.Printf("New game session: user=%s, terminal=%s, size=%dx%d",
				sess.User(), pty.Term, pty.Window.Width, pty.Window.Height)

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			if err := runSession(sess, sizeTracker.getSize, winningScore); err != nil {
				log.Printf("Game error for %s: %v", sess.User(), err)
			}

			log.Printf("Session ended: user=%s", sess.User())
			next(sess)
		}
	}
}

// runSession wires scene, input and game together for one session.
func runSession(sess ssh.Session, sizeFunc draw.TermSizeFunc, winningScore int) error {
	ts := scene.NewTermScene(sess, sizeFunc)
	ts.SetFooter("arrows/wasd move paddle · q quits")

	g := game.New(game.Options{
		Scene:         ts,
		PlayerDisplay: ts.PlayerSink(),
		AIDisplay:     ts.OpponentSink(),
		WinningScore:  winningScore,
	})

	stream := input.StartStream(bufio.NewReader(sess))
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

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
