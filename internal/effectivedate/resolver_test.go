package effectivedate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimvet/internal/domain"
	dErrors "claimvet/pkg/domain-errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_ProdPrefersConcludedDate(t *testing.T) {
	claim := domain.Claim{
		ID:                uuid.New(),
		FeeCode:           "PROD",
		CaseConcludedDate: "2025-03-10",
		CaseStartDate:     "2025-01-01",
	}
	got, err := Resolve(claim)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 10), got)
}

func TestResolve_ProdFallsBackToStartDate(t *testing.T) {
	claim := domain.Claim{
		ID:            uuid.New(),
		FeeCode:       "PROD",
		CaseStartDate: "2025-01-01",
	}
	got, err := Resolve(claim)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.January, 1), got)
}

func TestResolve_NonProdOrder(t *testing.T) {
	t.Run("case start date wins", func(t *testing.T) {
		claim := domain.Claim{
			ID:                      uuid.New(),
			FeeCode:                 "CIV123",
			CaseStartDate:           "2024-06-15",
			RepresentationOrderDate: "2024-07-01",
			UniqueFileNumber:        "010101/123",
		}
		got, err := Resolve(claim)
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.June, 15), got)
	})

	t.Run("representation order date next", func(t *testing.T) {
		claim := domain.Claim{
			ID:                      uuid.New(),
			FeeCode:                 "CIV123",
			RepresentationOrderDate: "2024-07-01",
			UniqueFileNumber:        "010101/123",
		}
		got, err := Resolve(claim)
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.July, 1), got)
	})

	t.Run("unique file number last", func(t *testing.T) {
		claim := domain.Claim{
			ID:               uuid.New(),
			FeeCode:          "CIV123",
			UniqueFileNumber: "070722/001",
		}
		got, err := Resolve(claim)
		require.NoError(t, err)
		assert.Equal(t, date(2022, time.July, 7), got)
	})
}

func TestResolve_UFNCenturyBoundary(t *testing.T) {
	tests := []struct {
		ufn  string
		want time.Time
	}{
		{"010101/123", date(2001, time.January, 1)},
		{"010151/123", date(1951, time.January, 1)},
		{"010150/123", date(1950, time.January, 1)},
		{"311249/999", date(2049, time.December, 31)},
	}
	for _, tt := range tests {
		claim := domain.Claim{ID: uuid.New(), FeeCode: "CIV123", UniqueFileNumber: tt.ufn}
		got, err := Resolve(claim)
		require.NoError(t, err, "ufn %q", tt.ufn)
		assert.Equal(t, tt.want, got, "ufn %q", tt.ufn)
	}
}

func TestResolve_MalformedPresentFieldIsError(t *testing.T) {
	// A malformed present candidate must fail, never be skipped in favor
	// of a later, parseable one.
	claim := domain.Claim{
		ID:               uuid.New(),
		FeeCode:          "CIV123",
		CaseStartDate:    "not-a-date",
		UniqueFileNumber: "010101/123",
	}
	_, err := Resolve(claim)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestResolve_NoCandidates(t *testing.T) {
	claim := domain.Claim{ID: uuid.New(), FeeCode: "CIV123"}
	_, err := Resolve(claim)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestResolve_ImpossibleUFNDate(t *testing.T) {
	claim := domain.Claim{ID: uuid.New(), FeeCode: "CIV123", UniqueFileNumber: "320122/001"}
	_, err := Resolve(claim)
	assert.Error(t, err)
}
