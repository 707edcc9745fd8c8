package gmailclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/lucasmdrs/escala/internal/config"
	"github.com/lucasmdrs/escala/pkg/utils"
)

// Minimum interval between sends, to respect Gmail API rate limits
const emailInterval = 3 * time.Second

// Client wraps the Gmail API client. It implements the notification
// delivery channel.
type Client struct {
	service      *gmail.Service
	sender       string
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a new Gmail client reusing an existing OAuth token.
// The token should already carry the gmail.send scope.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token, sender string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{
		service: service,
		sender:  sender,
	}, nil
}

// Deliver sends a notification email. Throttled so a burst of
// substitution notices does not trip the API rate limit.
func (c *Client) Deliver(to, subject, body string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if !c.lastSendTime.IsZero() {
		if elapsed := time.Since(c.lastSendTime); elapsed < emailInterval {
			time.Sleep(emailInterval - elapsed)
		}
	}

	headers := fmt.Sprintf("To: %s\r\nSubject: %s\r\n", to, subject)
	if c.sender != "" {
		headers = fmt.Sprintf("From: %s\r\n", c.sender) + headers
	}
	message := headers + "\r\n" + body

	gmailMessage := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(message)),
	}

	if _, err := c.service.Users.Messages.Send("me", gmailMessage).Do(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSendTime = time.Now()
	return nil
}
