package framework

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"
)

const defaultRemoteSinkTimeout = time.Second * 5

// TypedMessage is implemented by messages that can describe their own kind. RemoteMessageSink
// uses it to label each message it forwards.
type TypedMessage interface {
	MessageType() string
}

// RemoteMessageSink is a MessageBus that forwards every message to an external collector as
// a JSON POST request. The collector applies backpressure by responding with any non-2xx
// status; that, or a failure to reach it at all, is reported as a rejection.
type RemoteMessageSink struct {
	url    string
	client *http.Client
	logger Logger
}

type remoteMessageEnvelope struct {
	Type    string      `json:"type"`
	Message interface{} `json:"message"`
}

// NewRemoteMessageSink creates a sink that posts to the specified URL. If client is nil, a
// client with a short default timeout is used.
func NewRemoteMessageSink(url string, client *http.Client, logger Logger) *RemoteMessageSink {
	if client == nil {
		client = &http.Client{Timeout: defaultRemoteSinkTimeout}
	}
	if logger == nil {
		logger = NullLogger()
	}
	return &RemoteMessageSink{url: url, client: client, logger: logger}
}

func (s *RemoteMessageSink) QueueMessage(message interface{}) bool {
	if err := s.post(message); err != nil {
		s.logger.Printf("Message collector rejected message: %s", err)
		return false
	}
	return true
}

func (s *RemoteMessageSink) post(message interface{}) error {
	envelope := remoteMessageEnvelope{Type: fmt.Sprintf("%T", message), Message: message}
	if tm, ok := message.(TypedMessage); ok {
		envelope.Type = tm.MessageType()
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	resp, err := s.client.Post(s.url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	if resp.Body != nil {
		_, _ = ioutil.ReadAll(resp.Body)
		_ = resp.Body.Close()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("collector returned HTTP status %d", resp.StatusCode)
	}
	return nil
}
