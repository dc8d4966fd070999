package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"claimvet/internal/validation"
	dErrors "claimvet/pkg/domain-errors"
)

type messageResponse struct {
	Code      string `json:"code"`
	Display   string `json:"displayMessage"`
	Technical string `json:"technicalMessage"`
	Source    string `json:"source"`
	Severity  string `json:"severity"`
}

type claimReportResponse struct {
	ClaimID  uuid.UUID         `json:"claimId"`
	Messages []messageResponse `json:"messages"`
	Retry    bool              `json:"retry"`
}

type validationResponse struct {
	SubmissionID       uuid.UUID             `json:"submissionId"`
	HasErrors          bool                  `json:"hasErrors"`
	SubmissionMessages []messageResponse     `json:"submissionMessages"`
	ClaimReports       []claimReportResponse `json:"claimReports"`
}

func fromContext(submissionID uuid.UUID, vctx *validation.Context) validationResponse {
	resp := validationResponse{
		SubmissionID:       submissionID,
		HasErrors:          vctx.HasErrors(),
		SubmissionMessages: []messageResponse{},
		ClaimReports:       []claimReportResponse{},
	}
	for _, m := range vctx.SubmissionMessages() {
		resp.SubmissionMessages = append(resp.SubmissionMessages, fromMessage(m))
	}
	for _, r := range vctx.ClaimReports() {
		report := claimReportResponse{ClaimID: r.ClaimID, Retry: r.Retry, Messages: []messageResponse{}}
		for _, m := range r.Messages {
			report.Messages = append(report.Messages, fromMessage(m))
		}
		resp.ClaimReports = append(resp.ClaimReports, report)
	}
	return resp
}

func fromMessage(m validation.Message) messageResponse {
	return messageResponse{
		Code:      string(m.Code),
		Display:   m.Display,
		Technical: m.Technical,
		Source:    string(m.Source),
		Severity:  string(m.Severity),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch dErrors.CodeOf(err) {
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		status = http.StatusBadRequest
	case dErrors.CodeNotFound:
		status = http.StatusNotFound
	case dErrors.CodeConflict:
		status = http.StatusConflict
	case dErrors.CodeUnavailable:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": string(dErrors.CodeOf(err))})
}
