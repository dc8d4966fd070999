// Package feescheme is the REST client for the Fee Scheme service.
package feescheme

import (
	"context"
	"net/http"

	"claimvet/internal/clients/httpclient"
	"claimvet/internal/validation/ports"
)

type Client struct {
	http *httpclient.Client
}

// New builds a Fee Scheme client. It satisfies ports.FeeScheme.
func New(baseURL string, tokens httpclient.TokenSource) *Client {
	return &Client{http: httpclient.New(baseURL, tokens)}
}

func (c *Client) GetFeeDetails(ctx context.Context, feeCode string) (*ports.FeeDetails, error) {
	var dto struct {
		FeeCode string `json:"feeCode"`
		FeeType string `json:"feeType"`
	}
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/v1/fees/"+feeCode, nil, &dto); err != nil {
		return nil, err
	}
	return &ports.FeeDetails{FeeCode: dto.FeeCode, FeeType: dto.FeeType}, nil
}

func (c *Client) CalculateFee(ctx context.Context, req ports.FeeCalculationRequest) (*ports.FeeCalculationResult, error) {
	body := map[string]string{
		"feeCode":          req.FeeCode,
		"areaOfLaw":        string(req.AreaOfLaw),
		"uniqueFileNumber": req.UniqueFileNumber,
		"caseStartDate":    req.CaseStartDate,
	}
	var dto struct {
		FeeCode string  `json:"feeCode"`
		Total   float64 `json:"total"`
	}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/api/v1/fees/calculate", body, &dto); err != nil {
		return nil, err
	}
	return &ports.FeeCalculationResult{FeeCode: dto.FeeCode, Total: dto.Total}, nil
}
