/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package c2s

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/ortuman/rabber/log"
	"github.com/ortuman/rabber/storage/repository"
	"github.com/ortuman/rabber/transport"
)

var listenerProvider = net.Listen

const maxAcceptDelay = time.Second

// Server accepts client connections and runs one session per connection.
type Server struct {
	cfg       *Config
	rep       repository.Container
	ln        net.Listener
	listening uint32
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	doneCh    chan struct{}
}

// New returns a C2S server instance.
func New(cfg *Config, rep repository.Container) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{cfg: cfg, rep: rep, ctx: ctx, cancel: cancel, doneCh: make(chan struct{})}
}

// Start binds the configured address and begins accepting connections in background.
func (s *Server) Start() error {
	address := s.cfg.Transport.BindAddr + ":" + strconv.Itoa(s.cfg.Transport.Port)

	ln, err := listenerProvider("tcp", address)
	if err != nil {
		return err
	}
	s.ln = ln
	atomic.StoreUint32(&s.listening, 1)

	log.Infof("c2s: listening at %s [domain: %s]", ln.Addr(), s.cfg.Domain)
	go s.listen()
	return nil
}

// Addr returns the server listener address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Shutdown stops accepting connections and cancels every running session,
// waiting for them to finish or ctx to be done.
func (s *Server) Shutdown(ctx context.Context) error {
	if !atomic.CompareAndSwapUint32(&s.listening, 1, 0) {
		return nil
	}
	err := s.ln.Close()
	s.cancel()
	<-s.doneCh // wait for accept loop

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) listen() {
	defer close(s.doneCh)

	var delay time.Duration
	for atomic.LoadUint32(&s.listening) == 1 {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay *= 2
			}
			if delay > maxAcceptDelay {
				delay = maxAcceptDelay
			}
			log.Errorf("c2s: accept failed: %v; retrying in %v", err, delay)
			select {
			case <-time.After(delay):
			case <-s.ctx.Done():
				return
			}
			continue
		}
		delay = 0
		s.startSession(conn)
	}
}

func (s *Server) startSession(conn net.Conn) {
	id := "c2s:" + uuid.New().String()
	sess := NewSession(id, transport.NewSocketTransport(conn, &s.cfg.Transport), s.cfg, s.rep)

	log.Infof("%s: accepted connection from %s", id, conn.RemoteAddr())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		reportConnectionOpened()
		defer reportConnectionClosed()

		_ = sess.Run(s.ctx)
	}()
}
