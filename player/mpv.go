package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mosaic-cli/mosaic/constant"
	"github.com/mosaic-cli/mosaic/grid"
	"github.com/mosaic-cli/mosaic/key"
	"github.com/mosaic-cli/mosaic/log"
	"github.com/mosaic-cli/mosaic/media"
	"github.com/mosaic-cli/mosaic/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	socketWaitRetries = 20
	socketWaitDelay   = 150 * time.Millisecond
	quitTimeout       = 3 * time.Second
	pumpBufferSize    = 64 * 1024
)

// MPV is a registry.Engine that runs one mpv process per tile.
type MPV struct {
	// Path of the mpv executable.
	Path string
	// Args are passed to every mpv process before the generated ones.
	Args []string
	// Screen is the area tiles are laid out on.
	Screen Screen

	mu    sync.Mutex
	tiles map[media.Handle]*session
}

// NewMPV returns an engine configured from the settings.
func NewMPV() *MPV {
	return &MPV{
		Path:   viper.GetString(key.PlayerPath),
		Screen: ScreenFromConfig(),
		tiles:  make(map[media.Handle]*session),
	}
}

// session is one running mpv process.
type session struct {
	handle media.Handle
	socket string
	cmd    *exec.Cmd
	stdin  io.WriteCloser

	exited chan struct{}
	pumped chan struct{}

	// guards ready and muted
	mu    sync.Mutex
	ready bool
	muted bool
}

// Attach starts mpv for the tile behind h and begins pumping its stream into it.
func (m *MPV) Attach(h media.Handle, cb media.Callbacks, title string, at grid.Placement) error {
	m.mu.Lock()
	if m.tiles == nil {
		m.tiles = make(map[media.Handle]*session)
	}
	if _, ok := m.tiles[h]; ok {
		m.mu.Unlock()
		return fmt.Errorf("player: handle %d is already attached", h)
	}
	m.mu.Unlock()

	socket, err := socketPath()
	if err != nil {
		return err
	}

	cmd := exec.Command(m.path(), m.arguments(socket, title, at)...)
	cmd.SysProcAttr = ownGroup()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("player: stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("player: start mpv: %w", err)
	}

	s := &session{
		handle: h,
		socket: socket,
		cmd:    cmd,
		stdin:  stdin,
		exited: make(chan struct{}),
		pumped: make(chan struct{}),
	}

	m.mu.Lock()
	m.tiles[h] = s
	m.mu.Unlock()

	go func() {
		_ = cmd.Wait()
		close(s.exited)
		log.Debugf("player: mpv for handle %d exited", h)
	}()
	go s.pump(cb)
	go s.awaitSocket()

	log.Infof("player: mpv pid %d attached to handle %d at %s", cmd.Process.Pid, h, at.Position)
	return nil
}

// SetMute records the desired audio state and applies it once the IPC socket is up.
func (m *MPV) SetMute(h media.Handle, muted bool) error {
	s, ok := m.session(h)
	if !ok {
		return fmt.Errorf("player: handle %d is not attached", h)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.muted = muted
	if !s.ready {
		return nil
	}
	_, err := command(s.socket, "set_property", "mute", muted)
	return err
}

// Detach asks mpv to quit, kills it if it does not, and waits for the pump to finish.
// The tile's adapter should already be closed so the pump is not parked in a read.
func (m *MPV) Detach(h media.Handle) error {
	m.mu.Lock()
	s, ok := m.tiles[h]
	delete(m.tiles, h)
	m.mu.Unlock()

	if !ok {
		return nil
	}

	s.mu.Lock()
	ready := s.ready
	s.mu.Unlock()

	if ready {
		_, _ = command(s.socket, "quit")
	}
	_ = s.stdin.Close()

	select {
	case <-s.exited:
	case <-time.After(quitTimeout):
		log.Warnf("player: mpv for handle %d ignored quit, killing", h)
		_ = kill(s.cmd)
		<-s.exited
	}

	<-s.pumped
	_ = os.Remove(s.socket)
	return nil
}

// Attached returns the handles that currently have a running session.
func (m *MPV) Attached() []media.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.Keys(m.tiles)
}

func (m *MPV) session(h media.Handle) (*session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.tiles[h]
	return s, ok
}

func (m *MPV) path() string {
	if m.Path == "" {
		return "mpv"
	}
	return m.Path
}

func (m *MPV) arguments(socket, title string, at grid.Placement) []string {
	title = sanitizeTitle(title)

	args := append([]string{}, m.Args...)
	args = append(args,
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server="+socket,
		"--force-media-title="+title,
		"--title="+title,
		"--force-window=immediate",
		"--keep-open=no",
		"--cache=yes",
	)
	if m.Screen.Width > 0 && m.Screen.Height > 0 {
		args = append(args, "--geometry="+m.Screen.Geometry(at), "--no-keepaspect-window")
	}

	// read the stream from stdin
	return append(args, "-")
}

// pump drives the callback contract until the stream ends or mpv stops reading.
func (s *session) pump(cb media.Callbacks) {
	defer close(s.pumped)
	defer func() { _ = s.stdin.Close() }()

	if status := cb.Open(s.handle); status != media.StatusOK {
		log.Warnf("player: open of handle %d failed with status %d", s.handle, status)
		return
	}
	defer cb.Close(s.handle)

	buf := make([]byte, pumpBufferSize)
	for {
		n := cb.Read(s.handle, buf, len(buf))
		if n == 0 {
			log.Debugf("player: handle %d reached end of stream", s.handle)
			return
		}
		if n < 0 {
			log.Warnf("player: read of handle %d failed with status %d", s.handle, n)
			return
		}

		if _, err := s.stdin.Write(buf[:n]); err != nil {
			// mpv went away, most likely its window was closed
			if !errors.Is(err, os.ErrClosed) {
				log.Debugf("player: mpv for handle %d stopped reading: %v", s.handle, err)
			}
			return
		}
	}
}

// awaitSocket waits for mpv's IPC server and then applies the audio state requested so far.
func (s *session) awaitSocket() {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-s.exited:
			return
		case <-time.After(socketWaitDelay):
		}

		if !dialable(s.socket) {
			continue
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		s.ready = true
		if s.muted {
			if _, err := command(s.socket, "set_property", "mute", true); err != nil {
				log.Warnf("player: mute handle %d: %v", s.handle, err)
			}
		}
		return
	}

	log.Warnf("player: ipc socket %s never came up, audio controls unavailable", s.socket)
}

func socketPath() (string, error) {
	random := make([]byte, 4)
	if _, err := rand.Read(random); err != nil {
		return "", fmt.Errorf("player: socket name: %w", err)
	}
	return filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.Mosaic, random)), nil
}

func sanitizeTitle(title string) string {
	title = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(title)
}
