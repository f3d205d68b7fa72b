// Copyright (c) 2024-2026 CuraVoice
//
// Licensed under GPL-2.0.
package internal_twilio_telephony

import (
	"context"
	"fmt"

	internal_telephony "github.com/curavoice/api/callback-api/internal/telephony"
	"github.com/curavoice/pkg/commons"
	"github.com/curavoice/pkg/utils"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type twl struct {
	logger commons.Logger
	client *twilio.RestClient
	from   string
}

// NewTwilio builds a Dialer on the Twilio REST API.
func NewTwilio(logger commons.Logger, accountSid, authToken, fromNumber string) (internal_telephony.Dialer, error) {
	if utils.IsEmpty(accountSid) || utils.IsEmpty(authToken) {
		return nil, fmt.Errorf("illegal twilio config account_sid or auth_token is not found: %w", internal_telephony.ErrUnavailable)
	}
	if utils.IsEmpty(fromNumber) {
		return nil, fmt.Errorf("illegal twilio config from_number is not found: %w", internal_telephony.ErrUnavailable)
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return &twl{logger: logger, client: client, from: fromNumber}, nil
}

func (tpc *twl) Provider() string {
	return "twilio"
}

func (tpc *twl) PlaceCall(ctx context.Context, to, answerURL string) (string, error) {
	params := &twilioApi.CreateCallParams{}
	params.SetTo(to)
	params.SetFrom(tpc.from)
	params.SetUrl(answerURL)

	call, err := tpc.client.Api.CreateCall(params)
	if err != nil {
		return "", &internal_telephony.PlacementError{To: to, Err: err}
	}
	if call.Sid == nil {
		return "", &internal_telephony.PlacementError{To: to, Err: fmt.Errorf("twilio returned no call sid")}
	}

	tpc.logger.Infof("placed twilio call: to=%s, sid=%s", to, *call.Sid)
	return *call.Sid, nil
}
