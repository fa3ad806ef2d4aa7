package main

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	json "github.com/goccy/go-json"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"

	"chat-relay/domain/event"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string `env:"RELAY_ADDR,default=localhost:8080"`
	RoomID        int    `env:"RELAY_ROOM_ID,default=1"`
	AccessToken   string `env:"RELAY_ACCESS_TOKEN"`
	RefreshToken  string `env:"RELAY_REFRESH_TOKEN"`
}

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run connects to the relay, prints incoming frames and forwards stdin
// lines as chat messages. Type /typing to send a typing notice, Ctrl+C or
// Ctrl+D to quit.
func run() (int, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	endpoint := url.URL{
		Scheme: "ws",
		Host:   config.ServerAddress,
		Path:   fmt.Sprintf("/ws/chat/%d", config.RoomID),
		RawQuery: url.Values{
			"token":   {config.AccessToken},
			"refresh": {config.RefreshToken},
		}.Encode(),
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint.String(), nil)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to relay at %s: %w", config.ServerAddress, err)
	}
	defer conn.Close()

	color.Greenln(fmt.Sprintf(">>> Connected to %s, room %d (Ctrl+C to quit)", config.ServerAddress, config.RoomID))

	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	// Reader goroutine: renders every frame the relay pushes.
	done := make(chan error, 1)
	go func() {
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				done <- err
				return
			}
			render(payload)
		}
	}()

	// Stdin loop: every line is a chat message, /typing sends a notice.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			var frame []byte
			if line == "/typing" {
				frame, _ = json.Marshal(map[string]string{"type": "typing"})
			} else {
				frame, _ = json.Marshal(map[string]string{"type": "message", "content": line})
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				done <- err
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		color.Yellowln("Disconnecting...")
		return exitOK, nil
	case err := <-done:
		if ctx.Err() != nil {
			return exitOK, nil
		}
		return exitRuntime, fmt.Errorf("connection lost: %w", err)
	}
}

// render pretty-prints one frame based on its type tag.
func render(payload []byte) {
	var head struct {
		Type event.Type `json:"type"`
	}
	if err := json.Unmarshal(payload, &head); err != nil {
		color.Redln(fmt.Sprintf("unreadable frame: %s", payload))
		return
	}

	switch head.Type {
	case event.TypeHistory:
		var frame event.History
		if err := json.Unmarshal(payload, &frame); err != nil {
			return
		}
		color.Grayln(fmt.Sprintf("--- replaying %d messages ---", len(frame.Messages)))
		for _, m := range frame.Messages {
			printMessage(m.Timestamp, m.Sender, m.Content)
		}
	case event.TypeMessage:
		var frame event.Message
		if err := json.Unmarshal(payload, &frame); err != nil {
			return
		}
		printMessage(frame.Message.CreatedAt, frame.Message.Sender, frame.Message.Content)
	case event.TypeTyping:
		var frame event.Typing
		if err := json.Unmarshal(payload, &frame); err != nil {
			return
		}
		color.Grayln(fmt.Sprintf("%s is typing...", frame.User))
	case event.TypeUserJoin:
		var frame event.UserJoin
		if err := json.Unmarshal(payload, &frame); err != nil {
			return
		}
		color.Greenln(fmt.Sprintf("* %s joined", frame.User))
	case event.TypeUserLeave:
		var frame event.UserLeave
		if err := json.Unmarshal(payload, &frame); err != nil {
			return
		}
		color.Yellowln(fmt.Sprintf("* %s left", frame.User))
	case event.TypeUsersOnline:
		var frame event.UsersOnline
		if err := json.Unmarshal(payload, &frame); err != nil {
			return
		}
		color.Cyanln(fmt.Sprintf("online: %s", strings.Join(frame.Users, ", ")))
	case event.TypeError:
		var frame event.Error
		if err := json.Unmarshal(payload, &frame); err != nil {
			return
		}
		color.Redln(fmt.Sprintf("error: %s", frame.Error))
	default:
		color.Grayln(string(payload))
	}
}

func printMessage(createdAt, sender, content string) {
	stamp := createdAt
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		stamp = t.Local().Format(time.TimeOnly)
	}
	fmt.Printf("[%s] %s: %s\n",
		color.Gray.Render(stamp),
		color.New(color.FgCyan, color.Bold).Render(sender),
		content,
	)
}
