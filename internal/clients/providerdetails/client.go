// Package providerdetails is the REST client for the Provider Details
// service, which knows each office's contract schedules.
package providerdetails

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"claimvet/internal/clients/httpclient"
	"claimvet/internal/domain"
	"claimvet/internal/validation/ports"
	dErrors "claimvet/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

type Client struct {
	http *httpclient.Client
}

// New builds a Provider Details client. It satisfies ports.ProviderDetails;
// an HTTP 204 becomes a (nil, nil) answer the schedule cache stores
// negatively.
func New(baseURL string, tokens httpclient.TokenSource) *Client {
	return &Client{http: httpclient.New(baseURL, tokens)}
}

func (c *Client) GetSchedules(ctx context.Context, officeCode string, area domain.AreaOfLaw, effectiveDate time.Time) (*ports.ProviderSchedules, error) {
	params := url.Values{}
	params.Set("areaOfLaw", string(area))
	if !effectiveDate.IsZero() {
		params.Set("effectiveDate", effectiveDate.Format(dateLayout))
	}

	var dto struct {
		OfficeCode string `json:"officeCode"`
		Schedules  []struct {
			StartDate     string `json:"startDate"`
			EndDate       string `json:"endDate"`
			CategoryOfLaw string `json:"categoryOfLaw"`
		} `json:"schedules"`
	}
	err := c.http.DoJSON(ctx, http.MethodGet, "/api/v1/offices/"+officeCode+"/schedules?"+params.Encode(), nil, &dto)
	if errors.Is(err, httpclient.ErrNoContent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := &ports.ProviderSchedules{OfficeCode: dto.OfficeCode}
	for _, s := range dto.Schedules {
		start, err := time.Parse(dateLayout, s.StartDate)
		if err != nil {
			return nil, dErrors.Newf(dErrors.CodeInternal, "schedule start date %q is malformed", s.StartDate)
		}
		end, err := time.Parse(dateLayout, s.EndDate)
		if err != nil {
			return nil, dErrors.Newf(dErrors.CodeInternal, "schedule end date %q is malformed", s.EndDate)
		}
		out.Schedules = append(out.Schedules, ports.Schedule{
			StartDate:     start,
			EndDate:       end,
			CategoryOfLaw: s.CategoryOfLaw,
		})
	}
	return out, nil
}
