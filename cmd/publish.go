// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Voltlab

package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/cobra"

	"github.com/voltlab/psuwatch/pkg/cmpsu"
)

var (
	mqttServer   string
	mqttUser     string
	mqttPass     string
	mqttClientID string
	mqttTopic    string
	publishEvery int
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish sensor snapshots to MQTT",
	Long: `Periodically publish the sensor table to an MQTT broker.

Each visible channel is published to <topic>/<category>/<channel> as a JSON
payload with the scaled value, physical value and rail label. Channels that
have not reported yet are skipped.`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVar(&mqttServer, "server", "tcp://localhost:1883", "MQTT server")
	publishCmd.Flags().StringVar(&mqttUser, "user", "", "MQTT username")
	publishCmd.Flags().StringVar(&mqttPass, "pass", "", "MQTT password")
	publishCmd.Flags().StringVar(&mqttClientID, "client-id", "psuwatch", "MQTT client id")
	publishCmd.Flags().StringVar(&mqttTopic, "topic", "psuwatch", "MQTT topic base")
	publishCmd.Flags().IntVar(&publishEvery, "interval", 5000, "Publish interval (milliseconds)")
}

// slotPayload is the JSON body published per channel.
type slotPayload struct {
	Value    int64   `json:"value"`
	Physical float64 `json:"physical"`
	Unit     string  `json:"unit"`
	Rail     string  `json:"rail,omitempty"`
	Time     string  `json:"time"`
}

func runPublish(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	opts := mqtt.NewClientOptions().AddBroker(mqttServer).SetClientID(mqttClientID)
	if mqttUser != "" {
		opts.SetUsername(mqttUser)
	}
	if mqttPass != "" {
		opts.SetPassword(mqttPass)
	}
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}
	defer client.Disconnect(250)

	session := newSession()
	go pumpFrames(conn, session.OnMessage)

	fmt.Printf("Psuwatch - MQTT Publisher\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Broker: %s, topic base: %s\n", mqttServer, mqttTopic)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	ticker := time.NewTicker(time.Duration(publishEvery) * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		publishSnapshot(client, session.Table())
	}
	return nil
}

// publishSnapshot publishes every slot that has data.
func publishSnapshot(client mqtt.Client, t *cmpsu.Table) {
	now := time.Now().Format(time.RFC3339)
	for _, cat := range cmpsu.Categories() {
		for ch := 0; ch < cat.Channels(); ch++ {
			v, ok := t.Value(cat, ch)
			if !ok {
				continue
			}

			rail, _ := t.Label(cat, ch)
			body, err := json.Marshal(slotPayload{
				Value:    v,
				Physical: physical(cat, v),
				Unit:     cat.Unit(),
				Rail:     rail,
				Time:     now,
			})
			if err != nil {
				log.Printf("mqtt marshal: %v", err)
				continue
			}

			topic := fmt.Sprintf("%s/%s/%d", mqttTopic, cat, ch)
			if token := client.Publish(topic, 0, false, body); token.Wait() && token.Error() != nil {
				log.Printf("mqtt publish %s: %v", topic, token.Error())
			}
		}
	}
}
