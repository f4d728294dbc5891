package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/forceboard-dev/forceboard/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	projectClients   = make(map[uint]map[*websocket.Conn]bool)
	projectClientsMu sync.RWMutex

	// AllowedOrigins is set from config at startup and gates the upgrade.
	AllowedOrigins []string
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastRefresh tells every client watching a project that part of its
// subtree changed and should be re-fetched.
func BroadcastRefresh(projectID uint, entity string) {
	projectClientsMu.RLock()
	clients, exists := projectClients[projectID]
	if !exists || len(clients) == 0 {
		projectClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	projectClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			logger.Warn("failed to set write deadline for broadcast", "error", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":       "refresh",
			"entity":     entity,
			"project_id": strconv.FormatUint(uint64(projectID), 10),
		})

		if err != nil {
			logger.Warn("failed to broadcast refresh", "project_id", projectID, "error", err)
			removeClient(projectID, conn)
			conn.Close()
		}
	}
}

func removeClient(projectID uint, conn *websocket.Conn) {
	projectClientsMu.Lock()
	if clients, exists := projectClients[projectID]; exists {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(projectClients, projectID)
		}
	}
	projectClientsMu.Unlock()
}

// ProjectFeed upgrades the connection and keeps it registered for the
// project's refresh broadcasts until the client goes away.
func ProjectFeed(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 32)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project_id"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Warn("failed to set initial read deadline", "error", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	id := uint(projectID)

	projectClientsMu.Lock()
	if projectClients[id] == nil {
		projectClients[id] = make(map[*websocket.Conn]bool)
	}
	projectClients[id][conn] = true
	projectClientsMu.Unlock()

	defer func() {
		removeClient(id, conn)
		conn.Close()
		logger.Debug("websocket connection closed", "project_id", id)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":       "connected",
		"project_id": strconv.FormatUint(projectID, 10),
	})

	if err != nil {
		logger.Warn("failed to send welcome message", "error", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	done := make(chan struct{})
	defer func() {
		close(done)
		ticker.Stop()
	}()

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		// The feed is one-way; inbound frames only keep the connection alive.
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket error", "project_id", id, "error", err)
			}
			break
		}
	}
}
