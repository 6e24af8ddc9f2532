// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/cinchrun/cinch/pkg/cinch"
	"github.com/cinchrun/cinch/pkg/program"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type wsecho struct {
	URL      *url.URL      `pos:"0" help:"websocket endpoint, ws:// or wss://"`
	Messages []string      `pos:"1*" help:"messages to send, one ping when omitted"`
	ID       uuid.UUID     `flag:"id" help:"session id prefixed to every message"`
	Timeout  time.Duration `flag:"timeout" default:"10s" help:"dial and read deadline"`
}

func (c *wsecho) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL.String(), nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.URL, err)
	}
	defer conn.Close()

	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	msgs := c.Messages
	if len(msgs) == 0 {
		msgs = []string{"ping"}
	}

	for _, m := range msgs {
		payload := fmt.Sprintf("%s %s", id, m)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
			return err
		}
		conn.SetReadDeadline(time.Now().Add(c.Timeout))
		_, echo, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", echo)
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(2*time.Second))
	return nil
}

func main() {
	r := &cinch.Runner{Info: &program.Info{
		Name:        "wsecho",
		Version:     "1.0.0",
		Description: "send messages to a websocket echo server",
	}}
	os.Exit(r.Main(&wsecho{}, os.Args[1:]))
}
