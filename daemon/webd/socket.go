package webd

import (
	"encoding/json"
	"time"

	"github.com/olahol/melody"
	"github.com/rotblauer/geomap/layers"
)

type websocketAction string

var websocketActionStored websocketAction = "stored"

// storedLayer announces a newly stored layer.
// Clients fetch the GeoJSON itself from /layers/{id}.
type storedLayer struct {
	ID       string         `json:"id"`
	Layers   []layers.Layer `json:"layers"`
	Features int            `json:"features"`
	Time     time.Time      `json:"time"`
}

type broadcast struct {
	Action websocketAction `json:"action"`
	Layer  storedLayer     `json:"layer"`
}

func (s *WebDaemon) initMelody() {
	s.melodyInstance = melody.New()

	// New clients catch up on recently stored layers.
	s.melodyInstance.HandleConnect(func(session *melody.Session) {
		s.logger.Debug("Websocket connected", "remote", session.Request.RemoteAddr)
		for _, item := range s.lastStored.Items() {
			b, err := json.Marshal(broadcast{Action: websocketActionStored, Layer: item.Value()})
			if err != nil {
				continue
			}
			_ = session.Write(b)
		}
	})

	// Incoming messages are logged and dropped.
	s.melodyInstance.HandleMessage(func(session *melody.Session, msg []byte) {
		s.logger.Debug("Websocket message", "remote", session.Request.RemoteAddr, "msg", string(msg))
	})

	s.melodyInstance.HandleDisconnect(func(session *melody.Session) {
		s.logger.Debug("Websocket disconnected", "remote", session.Request.RemoteAddr)
	})

	s.melodyInstance.HandleError(func(session *melody.Session, err error) {
		s.logger.Warn("Websocket error", "remote", session.Request.RemoteAddr, "error", err)
	})

	stored := make(chan storedLayer)
	sub := s.feedStored.Subscribe(stored)
	m := s.melodyInstance
	go func() {
		defer sub.Unsubscribe()
		for {
			select {
			case layer := <-stored:
				b, err := json.Marshal(broadcast{Action: websocketActionStored, Layer: layer})
				if err != nil {
					s.logger.Error("Failed to marshal stored layer event", "error", err)
					continue
				}
				if m.IsClosed() {
					return
				}
				if err := m.Broadcast(b); err != nil {
					s.logger.Warn("Failed to broadcast stored layer event", "error", err)
				}
			case err := <-sub.Err():
				if err != nil {
					s.logger.Error("Stored layer subscription failed", "error", err)
				}
				return
			}
		}
	}()
}
