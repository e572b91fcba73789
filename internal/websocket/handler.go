package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"SecretSanta/internal/middleware"
	"SecretSanta/internal/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws  (需带 reveal token，middleware 已注入 groupId/participant)
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.GetString(middleware.CtxGroupID)
		name := c.GetString(middleware.CtxParticipant)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.Log.Warn("websocket upgrade failed", "err", err)
			return
		}

		client := &Client{
			GroupID: groupID,
			Name:    name,
			Conn:    conn,
			Send:    make(chan OutgoingMessage, 8),
			Hub:     hub,
		}

		// 注册前写入，注册后 Send 可能被 hub 关闭
		client.Send <- OutgoingMessage{
			Event: EventConnected,
			Data:  map[string]any{"groupId": groupID, "participant": name},
		}
		select {
		case hub.register <- client:
		case <-hub.quit:
			_ = conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	}
}
