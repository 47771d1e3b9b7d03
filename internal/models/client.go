package models

import (
	"github.com/gofiber/websocket/v2"
)

// Client is one live websocket connection. Its Id is the connection id used
// throughout the poll state.
type Client struct {
	Id   string          `json:"id"`
	Conn *websocket.Conn `json:"-"`
	Send chan []byte     `json:"-"`
}
