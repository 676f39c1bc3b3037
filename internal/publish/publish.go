// Package publish sends a single hardware snapshot to NATS JetStream.
package publish

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gysosin/hwinfo/internal/collectors"
	"github.com/nats-io/nats.go"
)

// Message is the JetStream payload. GPU is nil and GPUError set when the
// GPU query failed.
type Message struct {
	SystemName string                  `json:"system_name"`
	SampledAt  time.Time               `json:"sampled_at"`
	CPU        collectors.CPUSnapshot  `json:"cpu"`
	GPU        *collectors.GPUSnapshot `json:"gpu,omitempty"`
	GPUError   string                  `json:"gpu_error,omitempty"`
}

// Publisher is the subset of nats.JetStreamContext used here.
type Publisher interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// BuildMessage assembles a payload from one CPU and one GPU query.
func BuildMessage(systemName string, cpu collectors.CPUSnapshot, gpu collectors.GPUSnapshot, gpuErr error, now time.Time) Message {
	msg := Message{SystemName: systemName, SampledAt: now.UTC(), CPU: cpu}
	if gpuErr != nil {
		msg.GPUError = gpuErr.Error()
	} else {
		msg.GPU = &gpu
	}
	return msg
}

// ResolveSystemName returns name, or the hostname when name is empty.
func ResolveSystemName(name string) (string, error) {
	if name != "" {
		return name, nil
	}
	hn, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("system name not specified and unable to get hostname: %w", err)
	}
	log.Printf("No system_name in config; using hostname: %s", hn)
	return hn, nil
}

// Send marshals msg and publishes it once on subject.
func Send(js Publisher, subject string, msg Message) error {
	payload, err := json.MarshalIndent(msg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	ack, err := js.Publish(subject, payload)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}
	if ack != nil {
		log.Printf("Published snapshot to subject %s (stream=%s seq=%d)", subject, ack.Stream, ack.Sequence)
	}
	return nil
}

// Publish connects to natsURL, publishes msg once and drains the connection.
func Publish(natsURL, subject string, msg Message) error {
	nc, err := nats.Connect(natsURL, nats.Name("hwinfo"), nats.Timeout(5*time.Second))
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	defer nc.Drain()

	js, err := nc.JetStream()
	if err != nil {
		return fmt.Errorf("get JetStream context: %w", err)
	}
	return Send(js, subject, msg)
}
