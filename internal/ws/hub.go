package ws

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Notification 是推送给其他在线用户的变更通知
type Notification struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Operator  string `json:"operator"`
	Timestamp string `json:"timestamp"`
}

// Hub 维护已认证的 WebSocket 连接，key 是用户名。
// 同一用户重复连接时，新连接替换旧连接。
type Hub struct {
	mu    sync.Mutex
	conns map[string]*websocket.Conn
}

// NewHub 创建一个空的连接集合
func NewHub() *Hub {
	return &Hub{conns: make(map[string]*websocket.Conn)}
}

// Register 把已通过认证的连接加入集合
func (h *Hub) Register(username string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.conns[username]; ok && old != conn {
		old.Close()
	}
	h.conns[username] = conn
	log.Printf("用户 %s 已连接到 WebSocket", username)
}

// Unregister 移除连接。仅当该用户名仍指向这个连接时才移除，
// 避免误删重连后的新连接。
func (h *Hub) Unregister(username string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.conns[username]; ok && current == conn {
		delete(h.conns, username)
		log.Printf("用户 %s 已断开 WebSocket 连接", username)
	}
}

// Count 返回当前在线连接数
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// BroadcastToOthers 把变更通知推送给除操作者以外的所有在线用户。
// 发送失败的连接会被移出集合。
func (h *Hub) BroadcastToOthers(operator, message string) {
	notification := Notification{
		Type:      "notification",
		Message:   message,
		Operator:  operator,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for username, conn := range h.conns {
		if username == operator {
			continue
		}
		if err := conn.WriteJSON(notification); err != nil {
			log.Printf("发送通知给用户 %s 失败: %v", username, err)
			conn.Close()
			delete(h.conns, username)
		}
	}
}

// NotificationMessage 构造统一格式的变更通知文案
func NotificationMessage(action, entity, entityName string) string {
	actions := map[string]string{
		"create": "添加了",
		"update": "编辑了",
		"delete": "删除了",
	}
	entities := map[string]string{
		"book":   "图书",
		"user":   "用户",
		"borrow": "借阅记录",
	}
	return fmt.Sprintf("%s%s：%s", actions[action], entities[entity], entityName)
}
