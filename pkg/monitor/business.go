package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics tracks the wallet-facing operations.
type BusinessMetrics struct {
	WalletsCreatedTotal prometheus.Counter
	TransfersTotal      *prometheus.CounterVec // path: native|token, status: ok|error
	ContractSendsTotal  *prometheus.CounterVec // status: ok|error
}

// Business is nil until Init runs; the Observe helpers tolerate that so the
// core stays usable in tests without metric registration.
var Business *BusinessMetrics

func initBusinessMetrics() {
	Business = &BusinessMetrics{
		WalletsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gateway_wallets_created_total",
			Help: "The total number of generated wallets",
		}),
		TransfersTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_transfers_total",
			Help: "Transfer submissions by path and outcome",
		}, []string{"path", "status"}),
		ContractSendsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_contract_sends_total",
			Help: "Raw contract call broadcasts by outcome",
		}, []string{"status"}),
	}
}

func ObserveWalletCreated() {
	if Business != nil {
		Business.WalletsCreatedTotal.Inc()
	}
}

func ObserveTransfer(path string, ok bool) {
	if Business != nil {
		Business.TransfersTotal.WithLabelValues(path, statusLabel(ok)).Inc()
	}
}

func ObserveContractSend(ok bool) {
	if Business != nil {
		Business.ContractSendsTotal.WithLabelValues(statusLabel(ok)).Inc()
	}
}

func statusLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
