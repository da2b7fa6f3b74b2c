package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/domain/market"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/infrastructure/metrics"
	"github.com/ryanchowdev/Stock-Market-Imitation/internal/pkg/logger"
)

// Price stream tuning
const (
	StreamBuffer       = 64
	streamWriteTimeout = 5 * time.Second
	streamPongTimeout  = 30 * time.Second
	streamPingInterval = 15 * time.Second
)

// PriceStreamHandler defines the interface for pushing simulator ticks to clients
type PriceStreamHandler interface {
	Stream(ctx *gin.Context)
}

type priceStreamHandler struct {
	simulator market.Simulator
	location  *time.Location
	upgrader  websocket.Upgrader
	logger    logger.Logger
}

// NewPriceStreamHandler creates a new PriceStreamHandler rendering dates in location
func NewPriceStreamHandler(simulator market.Simulator, location *time.Location, logger logger.Logger) PriceStreamHandler {
	return &priceStreamHandler{
		simulator: simulator,
		location:  location,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// browsers on any origin may subscribe
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Stream handles the GET request upgrading to a websocket of price ticks
// @Summary Live prices
// @Description Pushes a PriceTickMessage for every simulator tick. Ticks are skipped for clients that fall behind.
// @Tags Market
// @Success 101
// @Router /ws/prices [get]
func (handler *priceStreamHandler) Stream(ctx *gin.Context) {
	conn, err := handler.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// the upgrader already answered the client
		handler.logger.Warn("Failed to upgrade price stream: ", err)
		return
	}
	defer conn.Close()

	ticks, unsubscribe := handler.simulator.Subscribe(StreamBuffer)
	defer unsubscribe()
	metrics.StreamSubscribers.Inc()
	defer metrics.StreamSubscribers.Dec()

	// the client never sends data; reading detects the close and handles pongs
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongTimeout))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(streamPingInterval)
	defer ping.Stop()

	for {
		select {
		case tick, ok := <-ticks:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteJSON(newPriceTickMessage(tick, handler.location)); err != nil {
				handler.logger.Info("Dropped price stream client: ", err)
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-ctx.Request.Context().Done():
			return
		}
	}
}
