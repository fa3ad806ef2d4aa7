package e2e

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

// BaseRelaySuite drives a running relay over plain HTTP and websockets.
type BaseRelaySuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests.
func (s *BaseRelaySuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.RelayAddr == "" {
		s.T().Skip("RELAY_ADDR not set, skipping e2e suite")
	}
	s.client = &http.Client{Timeout: 10 * time.Second}
}

// Step prints a colorized header so scenario phases stand out in logs.
func (s *BaseRelaySuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// PostJSON sends one API request and decodes the response into out.
func (s *BaseRelaySuite) PostJSON(path, bearer string, body, out any) int {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, s.apiURL(path), bytes.NewReader(payload))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// Dial opens a chat session and returns the live socket.
func (s *BaseRelaySuite) Dial(roomID int64, accessToken string) *websocket.Conn {
	endpoint := url.URL{
		Scheme:   "ws",
		Host:     s.Config.RelayAddr,
		Path:     fmt.Sprintf("/ws/chat/%d", roomID),
		RawQuery: url.Values{"token": {accessToken}}.Encode(),
	}
	conn, _, err := websocket.DefaultDialer.Dial(endpoint.String(), nil)
	s.Require().NoError(err, "Failed to connect to relay at "+s.Config.RelayAddr)
	return conn
}

// NextFrame reads one frame and returns its decoded generic form.
func (s *BaseRelaySuite) NextFrame(conn *websocket.Conn) map[string]any {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	_, payload, err := conn.ReadMessage()
	s.Require().NoError(err)

	var frame map[string]any
	s.Require().NoError(json.Unmarshal(payload, &frame))
	return frame
}

func (s *BaseRelaySuite) apiURL(path string) string {
	return fmt.Sprintf("http://%s%s", s.Config.RelayAddr, path)
}
