package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kbenedict/customer-orders/pkg/logger"
	"github.com/valyala/fasthttp"
)

var (
	ErrNoRecipients     = errors.New("gateway accepted no recipients")
	ErrRecipientFailure = errors.New("gateway rejected recipient")
)

// Response shape of the Africa's Talking messaging endpoint.
type SMSMessageData struct {
	Message    string      `json:"Message"`
	Recipients []Recipient `json:"Recipients"`
}

type Recipient struct {
	Number     string `json:"number"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	MessageID  string `json:"messageId"`
	Cost       string `json:"cost"`
}

type sendResponse struct {
	SMSMessageData SMSMessageData `json:"SMSMessageData"`
}

type Config struct {
	APIURL   string
	Username string
	APIKey   string
	SenderID string
	Timeout  time.Duration
}

// AfricasTalkingClient sends text messages through the Africa's Talking
// bulk SMS API. It is pure transport: one form POST per call, no retry.
type AfricasTalkingClient struct {
	config Config
	client *fasthttp.Client
}

func NewAfricasTalkingClient(config Config) *AfricasTalkingClient {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	return &AfricasTalkingClient{
		config: config,
		client: &fasthttp.Client{
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
			MaxIdleConnDuration: 60 * time.Second,
		},
	}
}

// Send delivers one message to one recipient with the fixed sender
// identity from configuration.
func (c *AfricasTalkingClient) Send(ctx context.Context, to, message string) (*Recipient, error) {
	form := url.Values{}
	form.Set("username", c.config.Username)
	form.Set("to", to)
	form.Set("message", message)
	form.Set("from", c.config.SenderID)

	body, err := c.doRequest(ctx, form.Encode())
	if err != nil {
		return nil, err
	}

	var resp sendResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(resp.SMSMessageData.Recipients) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRecipients, resp.SMSMessageData.Message)
	}

	recipient := resp.SMSMessageData.Recipients[0]
	if recipient.Status != "Success" {
		return nil, fmt.Errorf("%w: %s (%d)", ErrRecipientFailure, recipient.Status, recipient.StatusCode)
	}

	logger.Info("SMS handed to gateway", "to", recipient.Number, "message_id", recipient.MessageID, "cost", recipient.Cost)

	return &recipient, nil
}

func (c *AfricasTalkingClient) doRequest(ctx context.Context, form string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.config.APIURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.config.APIKey)
	req.SetBodyString(form)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.config.Timeout)
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	statusCode := resp.StatusCode()
	if statusCode != fasthttp.StatusOK && statusCode != fasthttp.StatusCreated {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", statusCode, resp.Body())
	}

	result := make([]byte, len(resp.Body()))
	copy(result, resp.Body())

	return result, nil
}
