package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"potability/form"
)

const (
	wsMaxFrameBytes = 4096
	wsIdleTimeout   = 5 * time.Minute
	wsWriteTimeout  = 10 * time.Second
)

// handleWebSocket serves the same trigger over a websocket: each text frame
// is a measurement snapshot, each reply the rendered verdict.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.String("request_id", requestID), zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsMaxFrameBytes)

	for {
		conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read failed", zap.String("request_id", requestID), zap.Error(err))
			}
			return
		}

		var reply Verdict
		if messageType != websocket.TextMessage {
			h.metrics.RecordRejected()
			reply = Verdict{State: StateInvalid, Message: "expected a JSON text frame"}
		} else if measurement, err := form.ParseJSON(data); err != nil {
			h.metrics.RecordRejected()
			reply = Verdict{State: StateInvalid, Message: err.Error()}
		} else {
			start := time.Now()
			label, err := h.predictor.PredictMeasurement(measurement)
			h.metrics.ObserveLatency(time.Since(start))
			if err != nil {
				h.metrics.RecordFailure()
				h.logger.Error("Prediction failed", zap.String("request_id", requestID), zap.Error(err))
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "prediction failed"),
					time.Now().Add(wsWriteTimeout))
				return
			}
			h.metrics.RecordVerdict(label)
			reply = VerdictFor(label)
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Warn("WebSocket write failed", zap.String("request_id", requestID), zap.Error(err))
			return
		}
	}
}
