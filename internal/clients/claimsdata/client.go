// Package claimsdata is the REST client for the Claims Data service, the
// store of record for submissions and claims.
package claimsdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"claimvet/internal/clients/httpclient"
	"claimvet/internal/domain"
	"claimvet/internal/validation/ports"
)

type Client struct {
	http *httpclient.Client
}

// New builds a Claims Data client. It satisfies ports.ClaimsData.
func New(baseURL string, tokens httpclient.TokenSource) *Client {
	return &Client{http: httpclient.New(baseURL, tokens)}
}

type submissionDTO struct {
	ID                  uuid.UUID  `json:"id"`
	OfficeAccountNumber string     `json:"officeAccountNumber"`
	AreaOfLaw           string     `json:"areaOfLaw"`
	Period              string     `json:"submissionPeriod"`
	Status              string     `json:"status"`
	IsNilSubmission     bool       `json:"isNilSubmission"`
	Claims              []claimDTO `json:"claims"`
}

type claimDTO struct {
	ID                      uuid.UUID `json:"id"`
	SubmissionID            uuid.UUID `json:"submissionId"`
	FeeCode                 string    `json:"feeCode"`
	UniqueFileNumber        string    `json:"uniqueFileNumber"`
	UniqueClientNumber      string    `json:"uniqueClientNumber"`
	UniqueCaseID            string    `json:"uniqueCaseId"`
	CaseStartDate           string    `json:"caseStartDate"`
	CaseConcludedDate       string    `json:"caseConcludedDate"`
	RepresentationOrderDate string    `json:"representationOrderDate"`
	Status                  string    `json:"status"`
}

func (c *Client) GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	var dto submissionDTO
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/v1/submissions/"+id.String(), nil, &dto); err != nil {
		return nil, err
	}
	return toSubmission(dto), nil
}

func (c *Client) UpdateSubmissionStatus(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus) error {
	body := map[string]string{"status": string(status)}
	return c.http.DoJSON(ctx, http.MethodPatch, "/api/v1/submissions/"+id.String(), body, nil)
}

func (c *Client) GetSubmissions(ctx context.Context, q ports.SubmissionQuery) ([]domain.Submission, error) {
	params := url.Values{}
	for _, office := range q.Offices {
		params.Add("offices", office)
	}
	params.Set("areaOfLaw", string(q.AreaOfLaw))
	params.Set("submissionPeriod", q.Period)
	for _, s := range q.Statuses {
		params.Add("statuses", string(s))
	}

	var page struct {
		Content []submissionDTO `json:"content"`
	}
	err := c.http.DoJSON(ctx, http.MethodGet, "/api/v1/submissions?"+params.Encode(), nil, &page)
	if errors.Is(err, httpclient.ErrNoContent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.Submission, 0, len(page.Content))
	for _, dto := range page.Content {
		out = append(out, *toSubmission(dto))
	}
	return out, nil
}

func (c *Client) GetClaims(ctx context.Context, q ports.ClaimQuery) ([]domain.HistoricalClaim, error) {
	params := url.Values{}
	params.Set("office", q.OfficeCode)
	params.Set("feeCode", q.FeeCode)
	if q.UniqueFileNumber != "" {
		params.Set("uniqueFileNumber", q.UniqueFileNumber)
	}
	if q.UniqueClientNumber != "" {
		params.Set("uniqueClientNumber", q.UniqueClientNumber)
	}
	if q.UniqueCaseID != "" {
		params.Set("uniqueCaseId", q.UniqueCaseID)
	}
	for _, s := range q.ClaimStatuses {
		params.Add("claimStatuses", string(s))
	}
	for _, s := range q.SubmissionStatuses {
		params.Add("submissionStatuses", string(s))
	}

	var page struct {
		Content []struct {
			ClaimID          uuid.UUID `json:"claimId"`
			SubmissionID     uuid.UUID `json:"submissionId"`
			SubmissionPeriod string    `json:"submissionPeriod"`
			Status           string    `json:"status"`
		} `json:"content"`
	}
	err := c.http.DoJSON(ctx, http.MethodGet, "/api/v1/claims?"+params.Encode(), nil, &page)
	if errors.Is(err, httpclient.ErrNoContent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.HistoricalClaim, 0, len(page.Content))
	for _, dto := range page.Content {
		out = append(out, domain.HistoricalClaim{
			ClaimID:          dto.ClaimID,
			SubmissionID:     dto.SubmissionID,
			SubmissionPeriod: dto.SubmissionPeriod,
			Status:           domain.ClaimStatus(dto.Status),
		})
	}
	return out, nil
}

func (c *Client) UpdateClaim(ctx context.Context, submissionID, claimID uuid.UUID, patch ports.ClaimPatch) error {
	body := map[string]any{
		"status":             string(patch.Status),
		"validationMessages": patch.Messages,
	}
	path := fmt.Sprintf("/api/v1/submissions/%s/claims/%s", submissionID, claimID)
	return c.http.DoJSON(ctx, http.MethodPatch, path, body, nil)
}

func toSubmission(dto submissionDTO) *domain.Submission {
	sub := &domain.Submission{
		ID:                  dto.ID,
		OfficeAccountNumber: dto.OfficeAccountNumber,
		AreaOfLaw:           domain.AreaOfLaw(dto.AreaOfLaw),
		Period:              dto.Period,
		Status:              domain.SubmissionStatus(dto.Status),
		IsNilSubmission:     dto.IsNilSubmission,
	}
	for _, c := range dto.Claims {
		sub.Claims = append(sub.Claims, domain.Claim{
			ID:                      c.ID,
			SubmissionID:            c.SubmissionID,
			FeeCode:                 c.FeeCode,
			UniqueFileNumber:        c.UniqueFileNumber,
			UniqueClientNumber:      c.UniqueClientNumber,
			UniqueCaseID:            c.UniqueCaseID,
			CaseStartDate:           c.CaseStartDate,
			CaseConcludedDate:       c.CaseConcludedDate,
			RepresentationOrderDate: c.RepresentationOrderDate,
			Status:                  domain.ClaimStatus(c.Status),
		})
	}
	return sub
}
