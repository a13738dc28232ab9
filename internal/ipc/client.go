package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// Client talks to a running multiwin instance over its control socket.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the socket at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// SocketPath returns the socket the client dials.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to multiwin: %w (is `multiwin run` running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("multiwin error: %s", resp.Error)
	}

	return &resp, nil
}

func (c *Client) send(cmd CommandType, payload any, out any) error {
	req := &Request{Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", cmd, err)
		}
		req.Payload = data
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to parse %s data: %w", cmd, err)
	}
	return nil
}

// Ping checks if the instance is responding
func (c *Client) Ping() error {
	return c.send(CommandPing, nil, nil)
}

// GetStatus retrieves the instance status
func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.send(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListWindows retrieves the open windows, ordered by handle.
func (c *Client) ListWindows() ([]WindowInfo, error) {
	var data WindowsData
	if err := c.send(CommandListWindows, nil, &data); err != nil {
		return nil, err
	}
	return data.Windows, nil
}

// SpawnWindow asks the instance to open a window of the given kind.
func (c *Client) SpawnWindow(kind string) (*WindowInfo, error) {
	var info WindowInfo
	if err := c.send(CommandSpawnWindow, SpawnWindowPayload{Kind: kind}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// CloseWindow asks the instance to close one window.
func (c *Client) CloseWindow(handle uint32) error {
	return c.send(CommandCloseWindow, CloseWindowPayload{Handle: handle}, nil)
}

// CloseAll asks the instance to close every window and reports how many
// close requests were issued.
func (c *Client) CloseAll() (int, error) {
	var data CloseAllData
	if err := c.send(CommandCloseAll, nil, &data); err != nil {
		return 0, err
	}
	return data.Requested, nil
}
