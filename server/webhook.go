// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"
)

const webhookUsername = "Canonical Issues"

// Payload is the body of a Mattermost incoming webhook post.
type Payload struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

type WebhookValidationError struct {
	field string
}

func (e *WebhookValidationError) Error() string {
	return fmt.Sprintf("invalid webhook request: %s must be set", e.field)
}

func (s *Server) sendToWebhook(ctx context.Context, webhookURL string, payload *Payload) error {
	if webhookURL == "" {
		return &WebhookValidationError{field: "webhook URL"}
	}
	if payload.Username == "" {
		return &WebhookValidationError{field: "username"}
	}
	if payload.Text == "" {
		return &WebhookValidationError{field: "text"}
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payloadBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	r, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(ioutil.Discard, r.Body)
		r.Body.Close()
	}()

	if r.StatusCode != http.StatusOK {
		return errors.Errorf("received non-200 status code posting to mattermost: %v", r.StatusCode)
	}

	return nil
}

func (s *Server) logErrorToMattermost(msg string, args ...interface{}) {
	if s.Config.MattermostWebhookURL == "" {
		mlog.Warn("No Mattermost webhook URL set: unable to send message")
		return
	}

	webhookMessage := fmt.Sprintf(msg, args...)
	mlog.Debug("Sending Mattermost message", mlog.String("message", webhookMessage))

	if s.Config.MattermostWebhookFooter != "" {
		webhookMessage += "\n---\n" + s.Config.MattermostWebhookFooter
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	payload := &Payload{Username: webhookUsername, Text: webhookMessage}
	if err := s.sendToWebhook(ctx, s.Config.MattermostWebhookURL, payload); err != nil {
		mlog.Error("Unable to post to Mattermost webhook", mlog.Err(err))
	}
}
