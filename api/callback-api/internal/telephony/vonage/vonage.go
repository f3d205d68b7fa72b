// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_vonage_telephony

import (
	"context"
	"fmt"

	internal_telephony "github.com/curavoice/api/callback-api/internal/telephony"
	"github.com/curavoice/pkg/commons"
	"github.com/curavoice/pkg/utils"
	vng "github.com/vonage/vonage-go-sdk"
)

type vg struct {
	logger commons.Logger
	client *vng.VoiceClient
	from   string
}

// NewVonage builds a Dialer on the Vonage voice API using application
// credentials (application id + private key).
func NewVonage(logger commons.Logger, applicationId, privateKey, fromNumber string) (internal_telephony.Dialer, error) {
	if utils.IsEmpty(applicationId) || utils.IsEmpty(privateKey) {
		return nil, fmt.Errorf("illegal vonage config application_id or private_key is not found: %w", internal_telephony.ErrUnavailable)
	}
	if utils.IsEmpty(fromNumber) {
		return nil, fmt.Errorf("illegal vonage config from_number is not found: %w", internal_telephony.ErrUnavailable)
	}
	auth, err := vng.CreateAuthFromAppPrivateKey(applicationId, []byte(privateKey))
	if err != nil {
		return nil, fmt.Errorf("vonage auth setup failed: %w", internal_telephony.ErrUnavailable)
	}
	return &vg{logger: logger, client: vng.NewVoiceClient(auth), from: fromNumber}, nil
}

func (vt *vg) Provider() string {
	return "vonage"
}

// PlaceCall places an outbound call. The Vonage SDK has no context plumbing;
// ctx is accepted for interface parity but cancellation does not reach the
// in-flight request.
func (vt *vg) PlaceCall(_ context.Context, to, answerURL string) (string, error) {
	result, _, err := vt.client.CreateCall(vng.CreateCallOpts{
		From:      vng.CallFrom{Type: "phone", Number: vt.from},
		To:        vng.CallTo{Type: "phone", Number: to},
		AnswerUrl: []string{answerURL},
	})
	if err != nil {
		return "", &internal_telephony.PlacementError{To: to, Err: err}
	}
	if utils.IsEmpty(result.Uuid) {
		return "", &internal_telephony.PlacementError{To: to, Err: fmt.Errorf("vonage returned no call uuid")}
	}

	vt.logger.Infof("placed vonage call: to=%s, uuid=%s", to, result.Uuid)
	return result.Uuid, nil
}
