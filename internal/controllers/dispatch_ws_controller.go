package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"telecare/internal/dispatch"
	"telecare/internal/middleware"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// handshakeTimeout bounds how long a fresh connection may sit silent before
// declaring its role.
const handshakeTimeout = 10 * time.Second

// handshakeMessage is the first frame a client must send after connecting.
type handshakeMessage struct {
	Role string `json:"role"` // "doctor" or "patient"
}

// DispatchWSController upgrades dispatch connections and keeps them in the
// shared registry until they disconnect.
type DispatchWSController struct {
	Registry *dispatch.Registry
}

func NewDispatchWSController(reg *dispatch.Registry) *DispatchWSController {
	return &DispatchWSController{Registry: reg}
}

// HandleDispatchWebSocket is the gin handler for GET /ws/dispatch. The
// client declares its role in an initial JSON handshake message; when a JWT
// is supplied as a query token its role claim takes precedence. Doctor
// connections then receive new-request events until they close; this
// channel is one-way, server to client.
func (dc *DispatchWSController) HandleDispatchWebSocket(c *gin.Context) {
	tokenRole, err := roleFromToken(c.Query("token"))
	if err != nil {
		logrus.WithError(err).Warn("Dispatch WebSocket connection attempt with invalid token.")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade dispatch WebSocket connection.")
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	var hello handshakeMessage
	if err := conn.ReadJSON(&hello); err != nil {
		logrus.WithError(err).Warn("Dispatch WebSocket closed before role handshake.")
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "role handshake required"))
		return
	}
	conn.SetReadDeadline(time.Time{})

	role := hello.Role
	if tokenRole != "" {
		role = tokenRole
	}
	if role == "" {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "role required"))
		return
	}

	client := dc.Registry.Add(conn, role)
	defer dc.Registry.Remove(client)

	logrus.WithFields(logrus.Fields{
		"role":     role,
		"conn_ptr": fmt.Sprintf("%p", conn),
	}).Info("Dispatch WebSocket connection established.")

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("role", role).Info("Dispatch WebSocket closed normally or abnormally.")
			} else {
				logrus.WithError(err).WithField("role", role).Error("Error reading dispatch WebSocket message.")
			}
			break
		}
		logrus.WithField("role", role).Warn("Dispatch client sent unexpected message. Ignoring.")
	}
	logrus.WithFields(logrus.Fields{
		"role":     role,
		"conn_ptr": fmt.Sprintf("%p", conn),
	}).Info("Dispatch WebSocket connection closed.")
}

// roleFromToken extracts the role claim from an optional JWT query token.
// An absent token is fine; a present-but-invalid one is not.
func roleFromToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", nil
	}
	token, err := middleware.ValidateToken(tokenString)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}
	role, _ := claims["role"].(string)
	return role, nil
}
