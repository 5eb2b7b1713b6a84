package gateway

import (
	"context"
	"net/http"

	"github.com/dailyhustle/hustle/internal/client/models"
)

func (g *Gateway) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var env listEnvelope[models.Notification, models.Page]
	if err := g.t.Do(ctx, http.MethodGet, "/notifications/users", nil, &env); err != nil {
		return nil, err
	}
	return nonNil(env.Data.Data), nil
}

func (g *Gateway) UnreadCount(ctx context.Context) (int, error) {
	res, err := get[struct {
		Count int `json:"count"`
	}](ctx, g.t, "/notifications/users/unread-count")
	return res.Count, err
}
