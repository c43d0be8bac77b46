package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/logo-studio/backend/internal/models"
)

// WebSocket message types for the live preview protocol
const (
	// Client -> Server messages
	MsgTypeLayerAdd       = "layer:add"
	MsgTypeLayerUpdate    = "layer:update"
	MsgTypeLayerDelete    = "layer:delete"
	MsgTypeLayerDuplicate = "layer:duplicate"
	MsgTypeLayerReorder   = "layer:reorder"
	MsgTypeLayerSelect    = "layer:select"
	MsgTypeCanvasSet      = "canvas:set"
	MsgTypePresetApply    = "preset:apply"
	MsgTypeUndo           = "history:undo"
	MsgTypeRedo           = "history:redo"
	MsgTypeJump           = "history:jump"
	MsgTypeRender         = "render"
	MsgTypePing           = "ping"

	// Server -> Client messages
	MsgTypeConnected = "connected"
	MsgTypeError     = "error"
	MsgTypePong      = "pong"
)

// DefaultWSMaxMessageSize bounds a single client message.
const DefaultWSMaxMessageSize = 1 << 20

// WSMessage is the envelope of every message in both directions.
type WSMessage struct {
	Type      string          `json:"type"`
	ID        string          `json:"id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// LayerOpPayload addresses a layer. Fields are used by the ops that need
// them.
type LayerOpPayload struct {
	LayerID string            `json:"layerId"`
	Type    models.LayerType  `json:"type,omitempty"`
	Patch   models.LayerPatch `json:"patch,omitempty"`
	Index   *int              `json:"index,omitempty"`
	Preset  string            `json:"preset,omitempty"`
}

// WSRenderResponse carries the preview after an operation.
type WSRenderResponse struct {
	Type      string              `json:"type"`
	ID        string              `json:"id,omitempty"`
	SVG       string              `json:"svg"`
	Layers    []models.Layer      `json:"layers"`
	History   models.HistoryState `json:"history"`
	Timestamp int64               `json:"timestamp"`
}

// WSErrorResponse reports a failed operation.
type WSErrorResponse struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// PreviewSocket streams rendered previews of one session over a WebSocket.
// Every operation message is applied to the session and answered with a
// render message.
type PreviewSocket struct {
	handler        *Handler
	upgrader       websocket.Upgrader
	maxMessageSize int64
}

// NewPreviewSocket creates the live preview handler. A non-positive
// maxMessageSize uses DefaultWSMaxMessageSize.
func NewPreviewSocket(h *Handler, maxMessageSize int64) *PreviewSocket {
	if maxMessageSize <= 0 {
		maxMessageSize = DefaultWSMaxMessageSize
	}
	return &PreviewSocket{
		handler: h,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Allow connections from dev server
				return true
			},
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
		},
		maxMessageSize: maxMessageSize,
	}
}

// HandleWebSocket upgrades the connection and runs the preview protocol until
// the client goes away.
func (ps *PreviewSocket) HandleWebSocket(c echo.Context) error {
	id := c.Param("id")
	if _, ok := ps.handler.sessions.GetSession(id); !ok {
		return NewNotFoundError("session", id)
	}

	ws, err := ps.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()
	ws.SetReadLimit(ps.maxMessageSize)

	fmt.Printf("[WebSocket %s] Preview client connected\n", shortID(id))

	ps.send(ws, WSMessage{Type: MsgTypeConnected, ID: id, Timestamp: time.Now().UnixMilli()})
	ps.sendRender(ws, id, "")

	for {
		var msg WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				fmt.Printf("[WebSocket %s] Connection error: %v\n", shortID(id), err)
			}
			break
		}

		if msg.Type == MsgTypePing {
			ps.send(ws, WSMessage{Type: MsgTypePong, ID: msg.ID, Timestamp: time.Now().UnixMilli()})
			continue
		}

		if err := ps.apply(id, msg); err != nil {
			ps.sendError(ws, msg.ID, err)
			// the session is gone; nothing more can be rendered
			if isNotFound(err, "session") {
				break
			}
			continue
		}
		ps.sendRender(ws, id, msg.ID)
	}

	fmt.Printf("[WebSocket %s] Preview client disconnected\n", shortID(id))
	return nil
}

// apply runs one operation against the session.
func (ps *PreviewSocket) apply(id string, msg WSMessage) error {
	sessions := ps.handler.sessions

	var p LayerOpPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return NewBadRequestError("invalid payload", err)
		}
	}

	var err error
	switch msg.Type {
	case MsgTypeRender:
		if !sessions.TouchSession(id) {
			return NewNotFoundError("session", id)
		}
		return nil
	case MsgTypeLayerAdd:
		if !p.Type.Valid() {
			return NewValidationError("type")
		}
		_, err = sessions.AddLayer(id, p.Type)
	case MsgTypeLayerUpdate:
		if p.Patch.IsEmpty() {
			return NewBadRequestError("update contains no fields", nil)
		}
		_, err = sessions.UpdateLayer(id, p.LayerID, p.Patch)
	case MsgTypeLayerDelete:
		err = sessions.DeleteLayer(id, p.LayerID)
	case MsgTypeLayerDuplicate:
		_, err = sessions.DuplicateLayer(id, p.LayerID)
	case MsgTypeLayerReorder:
		if p.Index == nil {
			return NewValidationError("index")
		}
		_, err = sessions.ReorderLayer(id, p.LayerID, *p.Index)
	case MsgTypeLayerSelect:
		err = sessions.SelectLayer(id, p.LayerID)
	case MsgTypeCanvasSet:
		var canvas models.CanvasSettings
		if err := json.Unmarshal(msg.Payload, &canvas); err != nil {
			return NewBadRequestError("invalid canvas", err)
		}
		if err := validateCanvas(canvas); err != nil {
			return err
		}
		_, err = sessions.SetCanvas(id, canvas)
	case MsgTypePresetApply:
		preset, ok := ps.handler.presets.Lookup(p.Preset)
		if !ok {
			return NewNotFoundError("preset", p.Preset)
		}
		_, err = sessions.ApplyPreset(id, p.LayerID, preset)
	case MsgTypeUndo:
		_, err = sessions.Undo(id)
	case MsgTypeRedo:
		_, err = sessions.Redo(id)
	case MsgTypeJump:
		if p.Index == nil {
			return NewValidationError("index")
		}
		_, err = sessions.JumpTo(id, *p.Index)
	default:
		return &APIError{Code: "INVALID_TYPE", Message: "Unknown message type: " + msg.Type}
	}
	return editError(err, id, p.LayerID)
}

func (ps *PreviewSocket) sendRender(ws *websocket.Conn, id, msgID string) {
	sessions := ps.handler.sessions
	svg, err := sessions.Render(id)
	if err != nil {
		ps.sendError(ws, msgID, editError(err, id, ""))
		return
	}
	layers, err := sessions.Layers(id)
	if err != nil {
		ps.sendError(ws, msgID, editError(err, id, ""))
		return
	}
	hist, err := sessions.History(id)
	if err != nil {
		ps.sendError(ws, msgID, editError(err, id, ""))
		return
	}

	ps.send(ws, WSRenderResponse{
		Type:      MsgTypeRender,
		ID:        msgID,
		SVG:       svg,
		Layers:    layers,
		History:   hist,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (ps *PreviewSocket) sendError(ws *websocket.Conn, msgID string, err error) {
	resp := WSErrorResponse{Type: MsgTypeError, ID: msgID, Message: err.Error()}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		resp.Message = apiErr.Message
		resp.Code = apiErr.Code
	}
	ps.send(ws, resp)
}

func (ps *PreviewSocket) send(ws *websocket.Conn, v interface{}) {
	if err := ws.WriteJSON(v); err != nil {
		fmt.Printf("[WebSocket] Failed to send message: %v\n", err)
	}
}

func isNotFound(err error, resource string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound &&
		strings.HasPrefix(apiErr.Message, resource+" ")
}

// shortID truncates an ID for logging.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
