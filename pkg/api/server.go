package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/uhyunpark/tradesweep/pkg/storage"
	"github.com/uhyunpark/tradesweep/pkg/trading"
)

const (
	errInvalidBody      = "invalid request body"
	errInvalidExecution = "Invalid trade execution data"
	errInternal         = "internal server error"

	maxBodyBytes = 1 << 20
)

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string
	Journal        storage.Journal
	Logger         *zap.SugaredLogger
}

// Server handles the REST API and the fill WebSocket feed
type Server struct {
	desk    *trading.Desk
	router  *mux.Router
	handler http.Handler
	hub     *Hub
	journal storage.Journal
	logger  *zap.SugaredLogger
	httpSrv *http.Server
}

// NewServer creates a new API server and hooks the desk's fills into the
// WebSocket hub.
func NewServer(desk *trading.Desk, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	journal := opts.Journal
	if journal == nil {
		journal = storage.NewNopJournal()
	}

	s := &Server{
		desk:    desk,
		router:  mux.NewRouter(),
		hub:     NewHub(logger),
		journal: journal,
		logger:  logger,
	}
	s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	s.handler = c.Handler(s.router)

	desk.OnFill = s.BroadcastFills
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/orders", s.handleSubmitOrder).Methods("POST")
	s.router.HandleFunc("/orders", s.handleListOrders).Methods("GET")
	s.router.HandleFunc("/execute-trades", s.handleExecuteTrades).Methods("POST")

	s.router.HandleFunc("/market-data-analysis", s.handleMarketAnalysis).Methods("GET")
	s.router.HandleFunc("/risk-management", s.handleRiskManagement).Methods("GET")
	s.router.HandleFunc("/portfolio-rebalancing", s.handlePortfolioRebalancing).Methods("POST")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the CORS-wrapped router.
func (s *Server) Handler() http.Handler { return s.handler }

// Start runs the WebSocket hub and serves HTTP on addr until ctx is done,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	go s.hub.Run(ctx)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("api_server_listening", "addr", addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// ==============================
// REST Handlers
// ==============================

func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, errInvalidBody, "")
			return
		}
		respondError(w, http.StatusBadRequest, errInvalidBody, err.Error())
		return
	}

	order, err := s.desk.Submit(req.OrderRequest())
	if err != nil {
		var ve *trading.ValidationError
		if errors.As(err, &ve) {
			respondError(w, http.StatusBadRequest, ve.Reason, "")
			return
		}
		s.logger.Errorw("submit_order_failed", "err", err)
		respondError(w, http.StatusInternalServerError, errInternal, "")
		return
	}

	s.record("ORDER_SUBMIT", map[string]any{
		"order_id": order.ID,
		"symbol":   order.Symbol,
		"type":     order.Type,
		"quantity": order.Quantity,
		"price":    order.Price,
	})

	respondJSON(w, order)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.desk.List()
	if err != nil {
		s.logger.Errorw("list_orders_failed", "err", err)
		respondError(w, http.StatusInternalServerError, errInternal, "")
		return
	}
	respondJSON(w, orders)
}

func (s *Server) handleExecuteTrades(w http.ResponseWriter, r *http.Request) {
	// A body that does not decode is treated as one without a symbol.
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req ExecuteTradesRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	fills, err := s.desk.Execute(stringField(req.Symbol))
	if err != nil {
		if errors.Is(err, trading.ErrMissingParameter) {
			respondError(w, http.StatusBadRequest, errInvalidExecution, "")
			return
		}
		s.logger.Errorw("execute_trades_failed", "symbol", stringField(req.Symbol), "err", err)
		respondError(w, http.StatusInternalServerError, errInternal, "")
		return
	}

	if len(fills) > 0 {
		ids := make([]string, len(fills))
		for i, o := range fills {
			ids[i] = o.ID
		}
		s.record("TRADES_EXECUTED", map[string]any{
			"symbol":    fills[0].Symbol,
			"order_ids": ids,
		})
	}

	respondJSON(w, fills)
}

func (s *Server) handleMarketAnalysis(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, trading.MarketAnalysis())
}

func (s *Server) handleRiskManagement(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, trading.RiskManagement())
}

func (s *Server) handlePortfolioRebalancing(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, trading.RebalancedPortfolio())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

// ==============================
// Broadcast Methods (called from the desk)
// ==============================

// BroadcastFills pushes a sweep's fills to "fills:<symbol>" subscribers
func (s *Server) BroadcastFills(symbol string, fills []trading.TradeOrder) {
	s.hub.BroadcastToChannel(fillsChannel(symbol), FillsUpdate{
		Type:      "fills",
		Symbol:    symbol,
		Orders:    fills,
		Timestamp: time.Now().UnixMilli(),
	})
}

// ==============================
// Helper Functions
// ==============================

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, error string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Message: message,
	})
}

// record writes an audit event; failures are logged and otherwise ignored.
func (s *Server) record(event string, data map[string]any) {
	if err := s.journal.Record(event, data); err != nil {
		s.logger.Warnw("journal_write_failed", "event", event, "err", err)
	}
}
