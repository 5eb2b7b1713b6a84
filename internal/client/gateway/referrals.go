package gateway

import (
	"context"
	"net/http"

	"github.com/dailyhustle/hustle/internal/client/models"
)

func (g *Gateway) GetReferralStats(ctx context.Context) (models.ReferralStats, error) {
	return get[models.ReferralStats](ctx, g.t, "/referrals/stats")
}

func (g *Gateway) ListReferrals(ctx context.Context, q models.ListQuery) ([]models.Referral, models.Page, error) {
	v := pageParams(q.PageNo, q.LimitNo)
	if q.FromDate != "" {
		v.Set("fromDate", q.FromDate)
	}
	if q.ToDate != "" {
		v.Set("toDate", q.ToDate)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}

	var env listEnvelope[models.Referral, models.Page]
	if err := g.t.Do(ctx, http.MethodGet, "/referrals/history?"+v.Encode(), nil, &env); err != nil {
		return nil, models.Page{}, err
	}
	return nonNil(env.Data.Data), env.Data.Metadata, nil
}
