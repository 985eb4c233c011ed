// Package notify publishes computed schedules to an MQTT topic so downstream
// notifiers (the mobile app, a home automation bridge) can schedule reminders.
// The core itself never delivers notifications.
package notify

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/sleepyhq/sleepy/internal/model"
)

// Reminder is the published payload.
type Reminder struct {
	Schedule model.SleepSchedule `json:"schedule"`
	Quote    string              `json:"quote"`
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// Publisher pushes reminders to a single topic. A nil Publisher is valid and
// publishes nothing, so the pipeline does not branch on whether a broker is
// configured.
type Publisher struct {
	client mqtt.Client
	topic  string
}

func NewPublisher(brokerURL, clientID, topic string) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &Publisher{client: client, topic: topic}, nil
}

func (p *Publisher) PublishSchedule(schedule model.SleepSchedule, quote string) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(Reminder{Schedule: schedule, Quote: quote})
	if err != nil {
		return fmt.Errorf("marshal reminder: %w", err)
	}
	token := p.client.Publish(p.topic, 0, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish reminder: %w", token.Error())
	}
	log.Info().Str("topic", p.topic).Str("date", schedule.Date).Msg("published sleep reminder")
	return nil
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.client.Disconnect(250)
}
