// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmd

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/voltlab/psuwatch/pkg/cmpsu"
)

var exportAddr string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Expose the sensor table as Prometheus metrics",
	Long: `Serve the live sensor table on a Prometheus /metrics endpoint.

One gauge is registered per sensor channel, labeled with the channel index
and rail name. Channels that have not reported yet export NaN, which
Prometheus drops, so "no data" is distinguishable from a zero reading.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportAddr, "listen", ":9655", "Prometheus exporter listen address")
}

func runExport(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	session := newSession()
	go pumpFrames(conn, session.OnMessage)

	registerGauges(session.Table())

	fmt.Printf("Psuwatch - Prometheus Exporter\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Listening on %s\n", exportAddr)

	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(exportAddr, nil)
}

// registerGauges registers one gauge per visible slot. The gauge funcs
// read the table concurrently with the transport goroutine's writes.
func registerGauges(t *cmpsu.Table) {
	for _, cat := range cmpsu.Categories() {
		name, unit := metricName(cat)
		for ch := 0; ch < cat.Channels(); ch++ {
			labels := prometheus.Labels{"channel": strconv.Itoa(ch)}
			if rail, ok := t.Label(cat, ch); ok {
				labels["rail"] = rail
			}

			cat, ch := cat, ch
			promauto.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace:   "psu",
				Name:        name,
				Help:        fmt.Sprintf("PSU %s in %s.", cat, unit),
				ConstLabels: labels,
			}, func() float64 {
				v, ok := t.Value(cat, ch)
				if !ok {
					return math.NaN()
				}
				return physical(cat, v)
			})
		}
	}
}

// metricName returns the Prometheus metric name and unit per category.
func metricName(cat cmpsu.Category) (string, string) {
	switch cat {
	case cmpsu.Voltage:
		return "voltage_volts", "volts"
	case cmpsu.Current:
		return "current_amps", "amps"
	case cmpsu.Power:
		return "power_watts", "watts"
	case cmpsu.Temperature:
		return "temperature_celsius", "degrees Celsius"
	case cmpsu.FanSpeed:
		return "fan_speed_rpm", "RPM"
	}
	return "unknown", ""
}

// physical converts a scaled integer value to its physical unit.
func physical(cat cmpsu.Category, v int64) float64 {
	switch cat {
	case cmpsu.Power:
		return float64(v) / 1_000_000
	case cmpsu.FanSpeed:
		return float64(v)
	}
	return float64(v) / 1000
}
