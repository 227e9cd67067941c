package rpc

import (
	"errors"
	"fmt"
	"net/rpc"

	"github.com/BrugadaSyndrome/bslogger"
)

// TcpClient is a thin logging wrapper around a net/rpc client connection.
type TcpClient struct {
	client        *rpc.Client
	serverAddress string

	Logger bslogger.Logger
	Name   string
}

func NewTcpClient(serverAddress string, name string) TcpClient {
	return TcpClient{
		serverAddress: serverAddress,
		Logger:        bslogger.NewLogger(name, bslogger.Normal, nil),
		Name:          name,
	}
}

// Connect dials the server. Connecting twice is a no-op.
func (tc *TcpClient) Connect() error {
	if tc.client != nil {
		tc.Logger.Warningf("Already connected to server at address %s", tc.serverAddress)
		return nil
	}

	client, err := rpc.Dial("tcp", tc.serverAddress)
	if err != nil {
		tc.Logger.Errorf("Connecting to server at address %s: %s", tc.serverAddress, err)
		return err
	}
	tc.client = client
	tc.Logger.Infof("Connected to server at %s", tc.serverAddress)
	return nil
}

// Call invokes a remote method. Errors are returned to the caller; expected
// end-of-work errors are the caller's to recognize, so they are not logged
// here.
func (tc *TcpClient) Call(method string, request interface{}, reply interface{}) error {
	if tc.client == nil {
		message := fmt.Sprintf("not connected to server at address %s (method %s)", tc.serverAddress, method)
		tc.Logger.Error(message)
		return errors.New(message)
	}
	return tc.client.Call(method, request, reply)
}

// Disconnect closes the connection.
func (tc *TcpClient) Disconnect() error {
	if tc.client == nil {
		return fmt.Errorf("already disconnected from server at address %s", tc.serverAddress)
	}

	if err := tc.client.Close(); err != nil {
		tc.Logger.Errorf("Disconnecting from server at address %s: %s", tc.serverAddress, err)
		return err
	}
	tc.client = nil
	tc.Logger.Infof("Disconnected from server at %s", tc.serverAddress)
	return nil
}
