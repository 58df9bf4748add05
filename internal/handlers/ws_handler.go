package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/library_management/internal/auth"
	"github.com/library_management/internal/ws"
)

// WSHandler 处理 /ws 的连接升级与认证
type WSHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler 创建一个新的 WSHandler 实例
func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 前端与后端同源部署，放开来源检查
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// authMessage 客户端建立连接后发送的第一条消息
type authMessage struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// Serve 升级连接并等待认证消息。
// 认证通过后连接注册到 Hub，开始接收变更通知；
// 认证失败时回复 auth_error 并关闭连接。
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	var msg authMessage
	if err := conn.ReadJSON(&msg); err != nil || msg.Type != "auth" {
		conn.WriteJSON(gin.H{"type": "auth_error", "message": "身份验证失败"})
		conn.Close()
		return
	}

	claims, err := auth.ParseToken(msg.Token)
	if err != nil {
		conn.WriteJSON(gin.H{"type": "auth_error", "message": "身份验证失败"})
		conn.Close()
		return
	}

	username := claims.Username
	h.hub.Register(username, conn)
	conn.WriteJSON(gin.H{"type": "auth_success", "message": "WebSocket 连接成功"})

	// 通知由 Hub 主动推送，这里只消费入站帧以感知连接关闭
	go func() {
		defer func() {
			h.hub.Unregister(username, conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
