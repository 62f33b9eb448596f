package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diillson/cloudsec-dashboard-go/internal/domain/repository"
	"github.com/diillson/cloudsec-dashboard-go/internal/shared/types"
)

// DashboardServer exposes the latest aggregated artifacts over a read-only
// JSON API for the dashboard frontend.
type DashboardServer struct {
	findingsRepo repository.FindingsRepository
	console      types.ConsoleInterface
	findingsDir  string
}

// NewDashboardServer cria um novo DashboardServer.
func NewDashboardServer(findingsRepo repository.FindingsRepository, console types.ConsoleInterface) *DashboardServer {
	return &DashboardServer{
		findingsRepo: findingsRepo,
		console:      console,
	}
}

// Serve inicia o servidor HTTP e bloqueia até o processo terminar.
func (s *DashboardServer) Serve(args *types.ServeArgs) error {
	s.findingsDir = args.FindingsDir

	s.console.LogInfo("Serving findings from %s", args.FindingsDir)
	s.console.LogInfo("Dashboard API listening on %s", args.Addr)

	return http.ListenAndServe(args.Addr, s.Handler())
}

// Handler monta o mux com as rotas da API.
func (s *DashboardServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/findings", s.handleFindings)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

// handleFindings devolve o array de findings do snapshot mais recente.
// Sem artefatos, devolve um array vazio em vez de erro.
func (s *DashboardServer) handleFindings(w http.ResponseWriter, r *http.Request) {
	findings, err := s.findingsRepo.LoadLatestFindings(s.findingsDir)
	if err != nil {
		if errors.Is(err, types.ErrNoFindingsDir) || errors.Is(err, types.ErrNoAggregatedFindings) {
			writeJSON(w, []struct{}{})
			return
		}
		s.console.LogError("Failed to load findings: %s", err)
		http.Error(w, "failed to load findings", http.StatusInternalServerError)
		return
	}
	if findings == nil {
		writeJSON(w, []struct{}{})
		return
	}
	writeJSON(w, findings)
}

// handleSummary devolve o resumo do snapshot mais recente.
// Sem artefatos, devolve um objeto vazio em vez de erro.
func (s *DashboardServer) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.findingsRepo.LoadLatestSummary(s.findingsDir)
	if err != nil {
		if errors.Is(err, types.ErrNoFindingsDir) || errors.Is(err, types.ErrNoSummary) {
			writeJSON(w, struct{}{})
			return
		}
		s.console.LogError("Failed to load summary: %s", err)
		http.Error(w, "failed to load summary", http.StatusInternalServerError)
		return
	}
	writeJSON(w, summary)
}

func (s *DashboardServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
