package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/timeline"
)

// WebSocket message types for the live simulation protocol
const (
	// Client -> Server messages
	MsgTypeSimulate = "simulate"
	MsgTypePing     = "ping"

	// Server -> Client messages
	MsgTypeConnected = "connected"
	MsgTypeStart     = "timeline:start"
	MsgTypeEvent     = "timeline:event"
	MsgTypeComplete  = "timeline:complete"
	MsgTypeError     = "error"
	MsgTypePong      = "pong"
)

// WSMessage is the envelope for every frame in both directions
type WSMessage struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// WSStartPayload announces a simulation run
type WSStartPayload struct {
	TotalTime  float64 `json:"totalTime"`
	EventCount int     `json:"eventCount"`
}

// WSEventPayload carries one timeline event
type WSEventPayload struct {
	Index int                  `json:"index"`
	Event models.TimelineEvent `json:"event"`
}

// WSCompletePayload closes a simulation run
type WSCompletePayload struct {
	TotalTime float64 `json:"totalTime"`
	Formatted string  `json:"formatted"`
}

// WSErrorResponse reports a failed request
type WSErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// SimulationSocket streams simulated timelines over a WebSocket so the
// editor can animate playback as events arrive.
type SimulationSocket struct {
	settings SettingsProvider
	upgrader websocket.Upgrader
	interval time.Duration
	maxBytes int64
}

// NewSimulationSocket creates the live simulation endpoint. interval paces
// successive event frames; zero sends them back to back. maxMessageKB bounds
// incoming frames.
func NewSimulationSocket(settings SettingsProvider, interval time.Duration, maxMessageKB int) *SimulationSocket {
	return &SimulationSocket{
		settings: settings,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from dev server
				return true
			},
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
		},
		interval: interval,
		maxBytes: int64(maxMessageKB) * 1024,
	}
}

// HandleWebSocket upgrades the connection and serves simulate requests
func (s *SimulationSocket) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()
	if s.maxBytes > 0 {
		ws.SetReadLimit(s.maxBytes)
	}

	fmt.Println("[WebSocket] Client connected for simulation")

	s.sendMessage(ws, WSMessage{
		Type:      MsgTypeConnected,
		Timestamp: time.Now().UnixMilli(),
	})

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				fmt.Printf("[WebSocket] Connection error: %v\n", err)
			}
			break
		}

		switch msg.Type {
		case MsgTypePing:
			s.sendMessage(ws, WSMessage{Type: MsgTypePong, ID: msg.ID, Timestamp: time.Now().UnixMilli()})
		case MsgTypeSimulate:
			if err := s.handleSimulate(ws, msg); err != nil {
				fmt.Printf("[WebSocket] Simulation stream aborted: %v\n", err)
				return nil
			}
		default:
			s.sendError(ws, msg.ID, "Unknown message type: "+msg.Type, "INVALID_TYPE")
		}
	}

	fmt.Println("[WebSocket] Client disconnected")
	return nil
}

// handleSimulate runs one simulation and streams its events. A returned
// error means the connection can no longer be written to.
func (s *SimulationSocket) handleSimulate(ws *websocket.Conn, msg WSMessage) error {
	var req simulateRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		s.sendError(ws, msg.ID, "Invalid simulate payload: "+err.Error(), "INVALID_PAYLOAD")
		return nil
	}

	result, err := timeline.Simulate(req.PathData, req.resolveSettings(s.settings))
	if err != nil {
		s.sendError(ws, msg.ID, err.Error(), "SIMULATION_FAILED")
		return nil
	}

	if err := ws.WriteJSON(WSMessage{
		Type:      MsgTypeStart,
		ID:        msg.ID,
		Payload:   mustJSON(WSStartPayload{TotalTime: result.TotalTime, EventCount: len(result.Timeline)}),
		Timestamp: time.Now().UnixMilli(),
	}); err != nil {
		return err
	}

	for i, ev := range result.Timeline {
		if i > 0 && s.interval > 0 {
			time.Sleep(s.interval)
		}
		if err := ws.WriteJSON(WSMessage{
			Type:      MsgTypeEvent,
			ID:        msg.ID,
			Payload:   mustJSON(WSEventPayload{Index: i, Event: ev}),
			Timestamp: time.Now().UnixMilli(),
		}); err != nil {
			return err
		}
	}

	return ws.WriteJSON(WSMessage{
		Type: MsgTypeComplete,
		ID:   msg.ID,
		Payload: mustJSON(WSCompletePayload{
			TotalTime: result.TotalTime,
			Formatted: timeline.FormatTime(result.TotalTime),
		}),
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *SimulationSocket) sendMessage(ws *websocket.Conn, msg WSMessage) {
	if err := ws.WriteJSON(msg); err != nil {
		fmt.Printf("[WebSocket] Failed to send message: %v\n", err)
	}
}

func (s *SimulationSocket) sendError(ws *websocket.Conn, id, message, code string) {
	s.sendMessage(ws, WSMessage{
		Type:      MsgTypeError,
		ID:        id,
		Timestamp: time.Now().UnixMilli(),
		Payload: mustJSON(WSErrorResponse{
			Message: message,
			Code:    code,
		}),
	})
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
