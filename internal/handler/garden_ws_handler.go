package handler

import (
	"net/http"

	"garden-go/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// GardenFeedHandler 菜园读数推送
type GardenFeedHandler struct {
	hub    *ws.Hub
	logger logrus.FieldLogger
}

// NewGardenFeedHandler 创建推送处理器
func NewGardenFeedHandler(hub *ws.Hub, logger logrus.FieldLogger) *GardenFeedHandler {
	return &GardenFeedHandler{
		hub:    hub,
		logger: logger.WithField("handler", "garden_ws"),
	}
}

// Subscribe 升级为websocket，之后每条新的菜园读数都会推送过来
// GET /ws/garden
func (h *GardenFeedHandler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("websocket升级失败")
		return
	}

	h.hub.Register(conn)
	h.logger.WithField("connections", h.hub.Count()).Info("订阅菜园数据")
	defer h.hub.Unregister(conn)

	// 只读取控制帧，直到客户端断开
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).Debug("websocket读取结束")
			}
			return
		}
	}
}
