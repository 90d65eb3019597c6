package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gagankishoreint-glitch/credai/internal/domain/port"
	"github.com/gagankishoreint-glitch/credai/internal/domain/valueobject"
)

func TestBuildWhere(t *testing.T) {
	user := uuid.New()

	tests := []struct {
		name      string
		filter    port.ApplicationFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no filter",
			filter:    port.ApplicationFilter{Limit: 10},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "user only",
			filter:    port.ApplicationFilter{UserID: user},
			wantWhere: " WHERE user_id = $1",
			wantArgs:  []any{user},
		},
		{
			name:      "status only",
			filter:    port.ApplicationFilter{Status: valueobject.ApplicationStatusDecision},
			wantWhere: " WHERE status = $1",
			wantArgs:  []any{"decision"},
		},
		{
			name:      "user and status",
			filter:    port.ApplicationFilter{UserID: user, Status: valueobject.ApplicationStatusAnalyzing},
			wantWhere: " WHERE user_id = $1 AND status = $2",
			wantArgs:  []any{user, "analyzing"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildWhere(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := Migrations.ReadDir(MigrationsDir)
	assert.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Contains(t, names, "000001_create_credit_applications.up.sql")
	assert.Contains(t, names, "000001_create_credit_applications.down.sql")
}
