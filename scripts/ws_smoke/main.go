package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/coder/websocket"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	user := flag.String("user", "tester", "username to log in with")
	channel := flag.String("channel", "general", "channel name")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	var screen strings.Builder
	expect := func(want string) error {
		for !strings.Contains(ansi.Strip(screen.String()), want) {
			_, data, err := conn.Read(ctx)
			if err != nil {
				return fmt.Errorf("waiting for %q: %w", want, err)
			}
			screen.Write(data)
		}
		return nil
	}
	send := func(line, want string) error {
		if err := conn.Write(ctx, websocket.MessageBinary, []byte(line+"\r\n")); err != nil {
			return fmt.Errorf("send %q: %w", line, err)
		}
		return expect(want)
	}

	if err := expect("/login"); err != nil {
		return err
	}
	if err := send("/login "+*user, "Welcome to the chat, "+*user+"!"); err != nil {
		return err
	}
	if err := send("/join "+*channel, "You have joined "+*channel+"."); err != nil {
		return err
	}
	if err := send(*text, *text); err != nil {
		return err
	}

	fmt.Printf("ok: %s posted %q to %s\n", *user, *text, *channel)
	return nil
}
