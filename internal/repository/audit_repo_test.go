package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paygate/internal/domain"
	"paygate/internal/models"
)

func TestAuditLogListByOperator(t *testing.T) {
	repo := NewAuditLogRepository(newTestDB(t))
	ctx := context.Background()
	one, two := uint(1), uint(2)

	require.NoError(t, repo.Create(ctx, &models.AuditLog{OperatorID: &one, Action: domain.AuditLogin}))
	require.NoError(t, repo.Create(ctx, &models.AuditLog{
		OperatorID: &one,
		Action:     domain.AuditNVPCall,
		Resource:   domain.ResourceNVPTransaction,
		ResourceID: "7",
		Metadata:   map[string]string{"method": "DoDirectPayment", "outcome": "Success"},
	}))
	require.NoError(t, repo.Create(ctx, &models.AuditLog{OperatorID: &two, Action: domain.AuditLogin}))

	list, err := repo.ListByOperator(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.AuditNVPCall, list[0].Action, "newest first")
	assert.Equal(t, "DoDirectPayment", list[0].Metadata["method"])

	list, err = repo.ListByOperator(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
