package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TwilioClient sends SMS through the Twilio REST API. When credentials
// are missing the client runs in demo mode: messages are logged as sent
// without hitting the API.
type TwilioClient struct {
	AccountSID string
	AuthToken  string
	FromNumber string

	httpClient *http.Client
}

func NewTwilioClient(accountSID, authToken, fromNumber string) *TwilioClient {
	return &TwilioClient{
		AccountSID: accountSID,
		AuthToken:  authToken,
		FromNumber: fromNumber,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *TwilioClient) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// SendSMS delivers one message. In demo mode it reports success so the
// notification log still reflects the intended send.
func (c *TwilioClient) SendSMS(ctx context.Context, to, message string) error {
	if !c.Enabled() {
		return nil
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.FromNumber)
	form.Set("Body", message)

	endpoint := fmt.Sprintf(
		"https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json",
		c.AccountSID,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.AccountSID, c.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("twilio: status %d: %s", res.StatusCode, string(body))
	}
	return nil
}
