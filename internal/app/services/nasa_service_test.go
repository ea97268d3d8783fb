package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarion/backend/internal/app/models"
	"github.com/stellarion/backend/internal/pkg/apperrors"
)

func TestNASAListFiltersByCategory(t *testing.T) {
	svc := NewNASAService(zerolog.Nop())

	resp, err := svc.List(context.Background(), "citizen-science", "", 1, 10)
	require.NoError(t, err)

	items := resp.Items.([]models.NASAOpportunity)
	require.NotEmpty(t, items)
	for _, o := range items {
		assert.Equal(t, "citizen-science", o.Category)
	}
	assert.Equal(t, int64(len(items)), resp.Pagination.Total)
}

func TestNASAListSearchIsCaseInsensitive(t *testing.T) {
	svc := NewNASAService(zerolog.Nop())

	resp, err := svc.List(context.Background(), "", "JUPITER", 1, 10)
	require.NoError(t, err)

	items := resp.Items.([]models.NASAOpportunity)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Title, "Radio JOVE")
}

func TestNASAListPagesPastEnd(t *testing.T) {
	svc := NewNASAService(zerolog.Nop())

	resp, err := svc.List(context.Background(), "", "", 99, 10)
	require.NoError(t, err)

	items := resp.Items.([]models.NASAOpportunity)
	assert.Empty(t, items)
	assert.Equal(t, 99, resp.Pagination.Page)
}

func TestNASAGet(t *testing.T) {
	svc := NewNASAService(zerolog.Nop())

	o, err := svc.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "hackathon", o.Category)

	_, err = svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
