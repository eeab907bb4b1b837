// Package inworldws implements the agents.Client boundary over a websocket
// session with the agent service.
package inworldws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultHost = "api.inworld.ai"

type Client struct {
	ws *websocket.Conn
	mu sync.Mutex

	options clientOptions

	closed bool
}

type clientOptions struct {
	host       string
	apiKey     string
	httpClient *http.Client
}

type ClientOption func(*clientOptions)

func WithHost(host string) ClientOption {
	return func(o *clientOptions) {
		if host != "" {
			o.host = host
		}
	}
}

func WithAPIKey(apiKey string) ClientOption {
	return func(o *clientOptions) {
		if apiKey != "" {
			o.apiKey = apiKey
		}
	}
}

func WithHTTPClient(client *http.Client) ClientOption {
	return func(o *clientOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// NewClient fetches a session token and opens the websocket session.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	client := &Client{
		options: clientOptions{
			host:       defaultHost,
			httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		},
	}
	for _, opt := range opts {
		opt(&client.options)
	}

	if client.options.apiKey == "" {
		apiKey, ok := os.LookupEnv("INWORLD_API_KEY")
		if !ok {
			return nil, fmt.Errorf("agent service api key not found")
		}
		client.options.apiKey = apiKey
	}

	token, err := client.fetchSessionToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session token: %w", err)
	}

	if client.ws, err = connectWebsocket(client.options.host, token); err != nil {
		return nil, fmt.Errorf("failed to open websocket: %w", err)
	}

	return client, nil
}

func (c *Client) fetchSessionToken(ctx context.Context) (string, error) {
	tokenURL := url.URL{Scheme: "https", Host: c.options.host, Path: "/v1/session/token"}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Basic "+c.options.apiKey)

	resp, err := c.options.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var parsedResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsedResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	return parsedResp.Token, nil
}

func connectWebsocket(host, token string) (*websocket.Conn, error) {
	// TODO: Use DialContext
	conn, _, err := websocket.DefaultDialer.Dial(
		(&url.URL{Scheme: "wss", Host: host, Path: "/v1/session/open"}).String(),
		http.Header{"Authorization": {"Bearer " + token}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to agent service: %w", err)
	}

	return conn, nil
}

type outgoingFrame struct {
	Type          string   `json:"type"`
	PacketID      string   `json:"packetId"`
	AgentID       string   `json:"agentId"`
	Text          string   `json:"text,omitempty"`
	Name          string   `json:"name,omitempty"`
	Audio         []byte   `json:"audio,omitempty"`
	InteractionID string   `json:"interactionId,omitempty"`
	UtteranceIDs  []string `json:"utteranceIds,omitempty"`
}

func (c *Client) writeFrame(frame outgoingFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.ws == nil {
		return fmt.Errorf("session closed")
	}

	frame.PacketID = uuid.NewString()
	if err := c.ws.WriteJSON(frame); err != nil {
		return fmt.Errorf("failed to write to agent service: %w", err)
	}

	return nil
}

func (c *Client) SendText(agentID, text string) error {
	return c.writeFrame(outgoingFrame{Type: "text", AgentID: agentID, Text: text})
}

func (c *Client) SendCustomEvent(agentID, name string) error {
	return c.writeFrame(outgoingFrame{Type: "custom", AgentID: agentID, Name: name})
}

func (c *Client) SendAudio(agentID string, audio []byte) error {
	return c.writeFrame(outgoingFrame{Type: "audio", AgentID: agentID, Audio: audio})
}

func (c *Client) StartAudioSession(agentID string) error {
	return c.writeFrame(outgoingFrame{Type: "audio_session_start", AgentID: agentID})
}

func (c *Client) StopAudioSession(agentID string) error {
	return c.writeFrame(outgoingFrame{Type: "audio_session_stop", AgentID: agentID})
}

func (c *Client) CancelResponse(agentID, interactionID string, utteranceIDs []string) error {
	return c.writeFrame(outgoingFrame{
		Type:          "cancel_response",
		AgentID:       agentID,
		InteractionID: interactionID,
		UtteranceIDs:  utteranceIDs,
	})
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.ws == nil {
		return nil
	}

	if err := c.ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	); err != nil {
		log.Printf("Failed to send websocket close message: %v", err)
	}

	return c.ws.Close()
}
