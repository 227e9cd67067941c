// Package rpc wraps net/rpc over TCP for the render farm. The server polls
// its listener with a short deadline so a shutdown signal is noticed
// without interrupting in-flight calls.
package rpc

import (
	"net"
	"net/rpc"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

// TcpServer serves the exported methods of one receiver object until Stop
// is called.
type TcpServer struct {
	address  string
	listener *net.TCPListener
	receiver interface{}
	shutdown chan struct{}
	stopOnce *sync.Once

	Logger bslogger.Logger
	Name   string
}

func NewTcpServer(receiver interface{}, address string, name string) TcpServer {
	return TcpServer{
		address:  address,
		receiver: receiver,
		shutdown: make(chan struct{}),
		stopOnce: &sync.Once{},
		Logger:   bslogger.NewLogger(name, bslogger.Normal, nil),
		Name:     name,
	}
}

// Run registers the receiver and starts accepting connections in the
// background. Each connection is served on its own goroutine.
func (ts *TcpServer) Run() error {
	handler := rpc.NewServer()
	if err := handler.Register(ts.receiver); err != nil {
		ts.Logger.Errorf("Registering receiver: %s", err)
		return err
	}

	tcpAddress, err := net.ResolveTCPAddr("tcp", ts.address)
	if err != nil {
		ts.Logger.Errorf("Resolving tcp address %s: %s", ts.address, err)
		return err
	}

	ts.listener, err = net.ListenTCP("tcp", tcpAddress)
	if err != nil {
		ts.Logger.Errorf("Listening at address %s: %s", ts.address, err)
		return err
	}

	go func() {
		for {
			select {
			case <-ts.shutdown:
				if err := ts.listener.Close(); err != nil {
					ts.Logger.Infof("Closing listener: %s", err)
				}
				return
			default:
				// Wake up periodically to check the shutdown channel.
				ts.listener.SetDeadline(time.Now().Add(time.Second))
			}

			conn, err := ts.listener.Accept()
			if err != nil {
				if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
					continue
				}
				ts.Logger.Warningf("Accepting connection: %s", err)
				continue
			}

			ts.Logger.Infof("Accepted connection from %s", conn.RemoteAddr())
			go handler.ServeConn(conn)
		}
	}()

	ts.Logger.Infof("Running server at address %s", ts.address)
	return nil
}

// Stop makes the accept loop close the listener and exit. Stopping more
// than once is a no-op.
func (ts *TcpServer) Stop() error {
	ts.stopOnce.Do(func() {
		ts.Logger.Infof("Shutting down server at address %s", ts.address)
		close(ts.shutdown)
	})
	return nil
}
