/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package c2s

import (
	"github.com/ortuman/rabber/auth"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	c2sActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rabber",
			Subsystem: "c2s",
			Name:      "active_connections",
			Help:      "The number of currently open client connections.",
		},
	)
	c2sIncomingElements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rabber",
			Subsystem: "c2s",
			Name:      "incoming_elements_total",
			Help:      "The total number of incoming top level elements.",
		},
		[]string{"name"},
	)
	c2sAuthentications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rabber",
			Subsystem: "c2s",
			Name:      "authentications_total",
			Help:      "The total number of SASL authentication outcomes.",
		},
		[]string{"mechanism", "result"},
	)
)

func init() {
	prometheus.MustRegister(c2sActiveConnections)
	prometheus.MustRegister(c2sIncomingElements)
	prometheus.MustRegister(c2sAuthentications)
}

func reportIncomingElement(name string) {
	c2sIncomingElements.With(prometheus.Labels{"name": name}).Inc()
}

func reportAuthentication(mechanism string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
		if saslErr, ok := err.(*auth.SASLError); ok {
			result = saslErr.Error()
		}
	}
	c2sAuthentications.With(prometheus.Labels{"mechanism": mechanism, "result": result}).Inc()
}

func reportConnectionOpened() {
	c2sActiveConnections.Inc()
}

func reportConnectionClosed() {
	c2sActiveConnections.Dec()
}
