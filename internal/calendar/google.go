package calendar

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleInserter inserts events through the Calendar API.
type GoogleInserter struct {
	calendarID string
	endpoint   string
}

// NewGoogleInserter creates an inserter for calendarID. A non-empty
// endpoint overrides the API base URL.
func NewGoogleInserter(calendarID, endpoint string) *GoogleInserter {
	return &GoogleInserter{
		calendarID: calendarID,
		endpoint:   endpoint,
	}
}

// Insert creates evt with the caller's access token.
func (g *GoogleInserter) Insert(ctx context.Context, accessToken string, evt *gcal.Event) (string, error) {
	opts := []option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: accessToken,
			TokenType:   "Bearer",
		})),
	}
	if g.endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.endpoint))
	}

	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("create calendar client: %w", err)
	}

	created, err := svc.Events.Insert(g.calendarID, evt).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}
