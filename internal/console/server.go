package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/udisondev/roundmods/internal/admin"
	"github.com/udisondev/roundmods/internal/config"
)

const authTimeout = 10 * time.Second

// ErrAuthFailed is returned when a session sends a wrong password.
var ErrAuthFailed = errors.New("authentication failed")

// HashPassword returns a bcrypt hash suitable for config.Console.PasswordHash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Server is the remote console. Each connection first sends the password on
// one line, then one command per line; replies are written back line by line.
type Server struct {
	cfg    config.Console
	runner *Runner

	listener net.Listener
	mu       sync.Mutex
}

// NewServer creates a remote console server.
func NewServer(cfg config.Console, runner *Runner) *Server {
	return &Server{cfg: cfg, runner: runner}
}

// Addr returns the listening address, or nil before Run/Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run listens on cfg.BindAddress:cfg.Port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.BindAddress, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts sessions on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	if s.cfg.PasswordHash == "" {
		slog.Warn("console password hash is empty, every login will be refused")
	}

	var wg sync.WaitGroup
	slog.Info("console server started", "address", ln.Addr())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				break
			}
			slog.Error("failed to accept console connection", "error", err)
			continue
		}
		wg.Go(func() {
			s.handleConnection(ctx, conn)
		})
	}

	wg.Wait()
	return nil
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	done := make(chan struct{})
	defer close(done)
	defer conn.Close()

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	remote := conn.RemoteAddr().String()
	slog.Info("console connection", "remote", remote)

	reader := bufio.NewReader(conn)
	if err := s.authenticate(conn, reader); err != nil {
		slog.Warn("console authentication failed", "remote", remote, "error", err)
		fmt.Fprintln(conn, "Authentication failed.")
		return
	}
	fmt.Fprintln(conn, "Authenticated.")

	caller := admin.NewCaller(remote, admin.AccessRoot)
	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			if s.cfg.ReadTimeout > 0 {
				conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
			}
			line, err := reader.ReadString('\n')
			if line != "" {
				select {
				case lines <- line:
				case <-done:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	if err := s.runner.session(ctx, caller, lines, conn); err != nil {
		slog.Error("console session ended", "remote", remote, "error", err)
		return
	}
	slog.Info("console session closed", "remote", remote)
}

func (s *Server) authenticate(conn net.Conn, reader *bufio.Reader) error {
	conn.SetReadDeadline(time.Now().Add(authTimeout))
	defer conn.SetReadDeadline(time.Time{})

	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")

	if s.cfg.PasswordHash == "" {
		return ErrAuthFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)); err != nil {
		return ErrAuthFailed
	}
	return nil
}
