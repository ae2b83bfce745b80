package interra

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the Prometheus collectors updated by the Client.
type Metrics struct {
	Connected       prometheus.Gauge
	Reconnects      *prometheus.CounterVec
	KeepaliveProbes *prometheus.CounterVec
	FramesSent      *prometheus.CounterVec
	EchoesDiscarded prometheus.Counter
	RoomTemperature prometheus.Gauge
	SetTemperature  prometheus.Gauge
	LightActive     *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "interra_hub_connected",
			Help: "1 while the hub session is believed healthy",
		}),
		Reconnects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interra_reconnects_total",
			Help: "Reconnect attempts by result",
		}, []string{"result"}),
		KeepaliveProbes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interra_keepalive_probes_total",
			Help: "Keepalive probes by outcome",
		}, []string{"result"}),
		FramesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interra_frames_sent_total",
			Help: "Frames written to the hub by request type",
		}, []string{"request_type"}),
		EchoesDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "interra_echo_lines_discarded_total",
			Help: "Heartbeat echo lines skipped while waiting for a reply",
		}),
		RoomTemperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "interra_ac_room_temperature_celsius",
			Help: "Last reported room temperature",
		}),
		SetTemperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "interra_ac_set_temperature_celsius",
			Help: "Last reported AC set temperature",
		}),
		LightActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "interra_light_active",
			Help: "1 if the light was last seen on",
		}, []string{"light"}),
	}

	reg.MustRegister(
		m.Connected,
		m.Reconnects,
		m.KeepaliveProbes,
		m.FramesSent,
		m.EchoesDiscarded,
		m.RoomTemperature,
		m.SetTemperature,
		m.LightActive,
	)
	return m
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
